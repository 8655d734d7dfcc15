// Package styles holds the lipgloss styles of tcm's human-readable output
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/tcm/internal/models"
)

// Palette is the set of colors the styles are built from
type Palette struct {
	Accent    string
	Title     string
	Subtle    string
	Normal    string
	ErrorFg   string
	ErrorBg   string
	InfoFg    string
	InfoBg    string
	WarningFg string
	WarningBg string
}

// DefaultPalette is used unless Init is called with another one
func DefaultPalette() Palette {
	return Palette{
		Accent:    "#7D56F4",
		Title:     "#FAFAFA",
		Subtle:    "#888888",
		Normal:    "#DDDDDD",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#E06C75",
		InfoFg:    "#1E1E1E",
		InfoBg:    "#98C379",
		WarningFg: "#1E1E1E",
		WarningBg: "#E5C07B",
	}
}

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:"
	ValueStyle    lipgloss.Style
	SectionStyle  lipgloss.Style // For section headers like "Steps"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

func init() {
	Init(DefaultPalette())
}

// Init rebuilds all CLI styles from the given palette
func Init(colors Palette) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// StatusStyle picks the badge style for a record status
func StatusStyle(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusActive:
		return SuccessStyle
	case models.StatusDisabled:
		return ErrorStyle
	default:
		return WarningStyle
	}
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
