package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/balkashynov/hwk/internal/models"
)

// MaxTitleLength is the length after which a title is cut at its first clause
const MaxTitleLength = 100

// Stock openers like "Homework ..." or "Please ..."
var titlePrefixRegex = regexp.MustCompile(`(?i)^(homework|assignment|task|please|students?|you need to|your|the)\s+`)

// Everything from the deadline or copula onward
var titleSuffixRegex = regexp.MustCompile(`(?i)\s+(is|are|will be|due|by|before).*$`)

var (
	titlePunctRegex  = regexp.MustCompile(`[.!?,;:]+$`)
	clauseSplitRegex = regexp.MustCompile(`[,;]`)
)

// CleanTitle reduces a sentence to a short assignment title
func CleanTitle(sentence string) string {
	title := titlePrefixRegex.ReplaceAllString(sentence, "")
	title = titleSuffixRegex.ReplaceAllString(title, "")
	title = titlePunctRegex.ReplaceAllString(strings.TrimSpace(title), "")
	title = strings.TrimSpace(title)

	// Take first reasonable part if too long
	if utf8.RuneCountInString(title) > MaxTitleLength {
		parts := clauseSplitRegex.Split(title, 2)
		if first := strings.TrimSpace(parts[0]); first != "" && len(parts) > 1 {
			title = first
		} else {
			title = string([]rune(title)[:MaxTitleLength])
		}
	}

	return strings.TrimSpace(title)
}

// NormalizePriority converts user input to a priority
// Accepts low/medium/med/high or 1/2/3, returns ok=false otherwise
func NormalizePriority(priority string) (models.Priority, bool) {
	priority = strings.ToLower(strings.TrimSpace(priority))
	switch priority {
	case "1", "low":
		return models.PriorityLow, true
	case "2", "medium", "med":
		return models.PriorityMedium, true
	case "3", "high":
		return models.PriorityHigh, true
	default:
		return "", false
	}
}
