// Package lexicon holds the keyword and pattern tables used to recognize
// homework in free text. The tables are read-only after package init and
// safe to share between goroutines.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/balkashynov/hwk/internal/models"
)

// SubjectKeywords maps a subject to the words that suggest it
type SubjectKeywords struct {
	Subject  models.Subject
	Keywords []string
}

// Subjects is checked in order; the first subject with a hit wins
var Subjects = []SubjectKeywords{
	{models.SubjectMath, []string{"math", "algebra", "calculus", "geometry", "statistics", "arithmetic", "equation", "formula", "solve", "calculate"}},
	{models.SubjectScience, []string{"science", "biology", "chemistry", "physics", "lab", "experiment", "hypothesis", "molecule", "atom", "cell"}},
	{models.SubjectEnglish, []string{"english", "literature", "writing", "essay", "poem", "novel", "grammar", "vocabulary", "reading", "paragraph"}},
	{models.SubjectHistory, []string{"history", "social studies", "geography", "government", "civilization", "war", "treaty", "constitution", "revolution"}},
	{models.SubjectArt, []string{"art", "drawing", "painting", "sculpture", "design", "creative", "visual", "artistic", "sketch"}},
	{models.SubjectMusic, []string{"music", "instrument", "song", "melody", "rhythm", "note", "chord", "composition"}},
	{models.SubjectPE, []string{"physical education", "pe", "sports", "exercise", "fitness", "athletic", "gym", "workout"}},
}

// AssignmentIndicators are words that mark a sentence as describing work to do
var AssignmentIndicators = []string{
	"assignment", "homework", "task", "project", "essay", "report", "study", "complete", "finish",
	"submit", "turn in", "due", "deadline", "read", "write", "solve", "practice", "review",
	"prepare", "research", "analyze", "create", "design", "build", "present", "quiz", "test", "exam",
}

// HighPriority keywords take precedence over LowPriority ones
var HighPriority = []string{"urgent", "important", "asap", "priority", "critical", "final", "exam", "test", "major"}

// LowPriority keywords
var LowPriority = []string{"optional", "extra credit", "bonus", "if time permits", "recommended", "suggested"}

// TypeRule assigns a type when any of its keywords is present
type TypeRule struct {
	Type     models.AssignmentType
	Keywords []string
}

// TypeRules are evaluated in order; no match means models.TypeOther
var TypeRules = []TypeRule{
	{models.TypeReading, []string{"read", "chapter"}},
	{models.TypeProject, []string{"project", "build", "create"}},
	{models.TypeQuiz, []string{"quiz"}},
	{models.TypeExam, []string{"exam", "test"}},
	{models.TypeAssignment, []string{"assignment", "homework"}},
}

// DeadlinePatterns capture the date token after a deadline marker.
// Order matters: the resolver tries them one by one.
var DeadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:due|by|before|until)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday|tomorrow|today|next\s+week|this\s+week)`),
	regexp.MustCompile(`(?i)(?:due|by|before|until)\s+(\d{1,2}/\d{1,2}(?:/\d{2,4})?|\w+\s+\d{1,2}(?:st|nd|rd|th)?)`),
	regexp.MustCompile(`(?i)(?:due|by|before|until)\s+(?:in\s+)?(\d+\s+(?:days?|weeks?|months?))`),
}

// ContainsAny reports whether text contains at least one keyword
func ContainsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// CountMatches counts how many distinct keywords occur in text
func CountMatches(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// HasDeadlineMarker reports whether any deadline pattern matches text,
// regardless of whether the captured token resolves to a date
func HasDeadlineMarker(text string) bool {
	for _, pattern := range DeadlinePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// SubjectOf returns the first subject whose keywords occur in text
func SubjectOf(text string) models.Subject {
	for _, entry := range Subjects {
		if ContainsAny(text, entry.Keywords) {
			return entry.Subject
		}
	}
	return models.SubjectOther
}

// HasSubjectKeyword reports whether any subject keyword occurs in text
func HasSubjectKeyword(text string) bool {
	return SubjectOf(text) != models.SubjectOther
}

// PriorityOf derives a priority from keywords, high winning over low
func PriorityOf(text string) models.Priority {
	if ContainsAny(text, HighPriority) {
		return models.PriorityHigh
	}
	if ContainsAny(text, LowPriority) {
		return models.PriorityLow
	}
	return models.PriorityMedium
}

// TypeOf returns the type of the first matching rule
func TypeOf(text string) models.AssignmentType {
	for _, rule := range TypeRules {
		if ContainsAny(text, rule.Keywords) {
			return rule.Type
		}
	}
	return models.TypeOther
}
