package models

import (
	"fmt"
	"strings"
)

// Subject is the school subject an assignment belongs to
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectScience Subject = "science"
	SubjectEnglish Subject = "english"
	SubjectHistory Subject = "history"
	SubjectArt     Subject = "art"
	SubjectMusic   Subject = "music"
	SubjectPE      Subject = "pe"
	SubjectOther   Subject = "other"
)

// Subjects lists every subject in display order
var Subjects = []Subject{
	SubjectMath, SubjectScience, SubjectEnglish, SubjectHistory,
	SubjectArt, SubjectMusic, SubjectPE, SubjectOther,
}

// ParseSubject validates a subject name
func ParseSubject(s string) (Subject, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, subject := range Subjects {
		if string(subject) == s {
			return subject, nil
		}
	}
	return "", fmt.Errorf("invalid subject '%s'. Use: math, science, english, history, art, music, pe, other", s)
}

// Priority is how urgently a task should be worked on
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank converts priority to an integer, higher is more urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Short returns the compact label used in tables
func (p Priority) Short() string {
	if p == PriorityMedium {
		return "med"
	}
	return string(p)
}

// AssignmentType classifies what kind of work an assignment is
type AssignmentType string

const (
	TypeAssignment AssignmentType = "assignment"
	TypeReading    AssignmentType = "reading"
	TypeProject    AssignmentType = "project"
	TypeQuiz       AssignmentType = "quiz"
	TypeExam       AssignmentType = "exam"
	TypeOther      AssignmentType = "other"
)

// Source tells whether a task came from extraction or was typed in
type Source string

const (
	SourceAI     Source = "ai"
	SourceManual Source = "manual"
)
