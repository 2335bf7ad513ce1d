package tui

import "github.com/balkashynov/hwk/internal/models"

// Color constants for hwk TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, user input
	ColorSecondaryText = "#B1B8C7" // Labels, descriptions
	ColorDisabledText  = "#6D7383" // Rejected items
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, active borders
	ColorAccentBright = "#A78BFA" // Highlights, current item

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

// PriorityColor returns red/amber/green for high/medium/low
func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return ColorError
	case models.PriorityMedium:
		return ColorWarning
	case models.PriorityLow:
		return ColorSuccess
	default:
		return ColorSecondaryText
	}
}

var subjectColors = map[models.Subject]string{
	models.SubjectMath:    "#3B82F6",
	models.SubjectScience: "#22C55E",
	models.SubjectEnglish: "#A855F7",
	models.SubjectHistory: "#F97316",
	models.SubjectArt:     "#EC4899",
	models.SubjectMusic:   "#6366F1",
	models.SubjectPE:      "#EF4444",
}

// SubjectColor returns the badge color for a subject
func SubjectColor(s models.Subject) string {
	if c, ok := subjectColors[s]; ok {
		return c
	}
	return ColorDisabledText
}
