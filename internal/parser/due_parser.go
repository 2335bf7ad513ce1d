package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/hwk/internal/lexicon"
)

// DefaultDeadlineDays is how far out a deadline lands when text names none
const DefaultDeadlineDays = 7

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	monthDateRegex = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?$`)
	relativeRegex  = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months)$`)
	isoDateRegex   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	euroDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var months = func() map[string]time.Month {
	names := make(map[string]time.Month)
	for month := time.January; month <= time.December; month++ {
		name := strings.ToLower(month.String())
		names[name] = month
		names[name[:3]] = month
	}
	names["sept"] = time.September
	return names
}()

// DateOnly truncates t to midnight of its calendar day in t's location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveDeadline finds the deadline mentioned in text, falling back to
// DefaultDeadlineDays after now when nothing usable is found.
func ResolveDeadline(text string, now time.Time) time.Time {
	if deadline, ok := MatchDeadline(text, now); ok {
		return deadline
	}
	return DateOnly(now).AddDate(0, 0, DefaultDeadlineDays)
}

// MatchDeadline tries each deadline pattern in declared order and returns the
// first date that resolves to a day strictly after now. Only the first
// textual match of each pattern is considered.
func MatchDeadline(text string, now time.Time) (time.Time, bool) {
	today := DateOnly(now)
	for _, pattern := range lexicon.DeadlinePatterns {
		matches := pattern.FindStringSubmatch(text)
		if len(matches) < 2 {
			continue
		}

		deadline, ok := resolveToken(matches[1], today)
		if !ok {
			continue
		}
		// Dates that are not in the future don't count as deadlines
		if !deadline.After(today) {
			continue
		}
		return deadline, true
	}
	return time.Time{}, false
}

// resolveToken turns a captured date token into a calendar date
func resolveToken(token string, today time.Time) (time.Time, bool) {
	token = strings.Join(strings.Fields(strings.ToLower(token)), " ")

	switch token {
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "today":
		return today, true
	case "next week", "this week":
		return today.AddDate(0, 0, 7), true
	}

	if weekday, ok := weekdays[token]; ok {
		return nextWeekday(today, weekday), true
	}

	if matches := slashDateRegex.FindStringSubmatch(token); matches != nil {
		return parseSlashDate(matches, today)
	}

	if matches := relativeRegex.FindStringSubmatch(token); matches != nil {
		return parseRelativeDate(matches, today)
	}

	if matches := monthDateRegex.FindStringSubmatch(token); matches != nil {
		month, ok := months[matches[1]]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(matches[2])
		return literalDate(today.Year(), month, day, today.Location())
	}

	return time.Time{}, false
}

// nextWeekday returns the next given weekday strictly after today,
// a full week ahead when today already is that weekday
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// parseSlashDate parses M/D with an optional 2 or 4 digit year
func parseSlashDate(matches []string, today time.Time) (time.Time, bool) {
	month, _ := strconv.Atoi(matches[1])
	day, _ := strconv.Atoi(matches[2])

	year := today.Year()
	if matches[3] != "" {
		year, _ = strconv.Atoi(matches[3])
		switch len(matches[3]) {
		case 2:
			year += 2000
		case 3:
			return time.Time{}, false
		}
	}

	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return literalDate(year, time.Month(month), day, today.Location())
}

// parseRelativeDate handles "N days|weeks|months"
func parseRelativeDate(matches []string, today time.Time) (time.Time, bool) {
	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, false
	}

	switch matches[2] {
	case "day", "days":
		return today.AddDate(0, 0, amount), true
	case "week", "weeks":
		return today.AddDate(0, 0, amount*7), true
	case "month", "months":
		return today.AddDate(0, amount, 0), true
	default:
		return time.Time{}, false
	}
}

// literalDate builds a date and rejects overflow like February 30th
func literalDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != month || date.Year() != year {
		return time.Time{}, false
	}
	return date, true
}

// ParseDueDate parses a deadline typed by the user
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2024")
// - yyyy-mm-dd (e.g., "2024-12-15")
// - X days, X weeks (e.g., "3 days", "1 week")
// - today, tomorrow, or a weekday name
func ParseDueDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("due date is empty")
	}

	today := DateOnly(now)

	if matches := euroDateRegex.FindStringSubmatch(input); matches != nil {
		day, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		year, _ := strconv.Atoi(matches[3])
		return validDate(year, month, day, today)
	}

	if matches := isoDateRegex.FindStringSubmatch(input); matches != nil {
		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])
		return validDate(year, month, day, today)
	}

	if matches := relativeRegex.FindStringSubmatch(input); matches != nil {
		amount, _ := strconv.Atoi(matches[1])
		if amount < 1 || amount > 365 {
			return time.Time{}, fmt.Errorf("amount must be between 1 and 365")
		}
		date, _ := parseRelativeDate(matches, today)
		return date, nil
	}

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "next week":
		return today.AddDate(0, 0, 7), nil
	}

	if weekday, ok := weekdays[input]; ok {
		return nextWeekday(today, weekday), nil
	}

	return time.Time{}, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, yyyy-mm-dd, X days, X weeks, today, tomorrow or a weekday")
}

// validDate checks the ranges of a manually entered date
func validDate(year, month, day int, today time.Time) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 2000 and 2100")
	}
	date, ok := literalDate(year, time.Month(month), day, today.Location())
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return date, nil
}

// FormatDueDate formats a deadline for display relative to now
func FormatDueDate(deadline, now time.Time) string {
	if deadline.IsZero() {
		return ""
	}

	daysDiff := DaysBetween(now, deadline)

	// Always show the actual date to avoid confusion
	dateStr := deadline.Format("Mon 02 Jan 2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("Due %s", dateStr)
	}
}

// DaysBetween counts calendar days from the date of from to the date of to,
// negative when to is earlier
func DaysBetween(from, to time.Time) int {
	start := DateOnly(from)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, start.Location())
	return int(math.Round(end.Sub(start).Hours() / 24))
}
