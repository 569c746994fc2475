package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/animabing/animabing/internal/models"
)

// Oxocarbon palette
var (
	OxocarbonBlack  = lipgloss.Color("#161616")
	OxocarbonBase00 = lipgloss.Color("#262626")
	OxocarbonBase01 = lipgloss.Color("#393939")
	OxocarbonBase02 = lipgloss.Color("#525252")
	OxocarbonBase03 = lipgloss.Color("#767676")
	OxocarbonBase04 = lipgloss.Color("#dde1e6")
	OxocarbonBase05 = lipgloss.Color("#f2f4f8")
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	OxocarbonTeal      = lipgloss.Color("#3ddbd9")
	OxocarbonBlue      = lipgloss.Color("#78a9ff")
	OxocarbonPink      = lipgloss.Color("#ee5396")
	OxocarbonRed       = lipgloss.Color("#ff5252")
	OxocarbonCyan      = lipgloss.Color("#33b1ff")
	OxocarbonMagenta   = lipgloss.Color("#ff7eb6")
	OxocarbonGreen     = lipgloss.Color("#42be65")
	OxocarbonPurple    = lipgloss.Color("#be95ff")
	OxocarbonLightBlue = lipgloss.Color("#82cfff")
	OxocarbonMauve     = lipgloss.Color("#d1aaff")
)

// GlowColors is the border rotation of the selected card
var GlowColors = []lipgloss.Color{
	OxocarbonPurple,
	OxocarbonMagenta,
	OxocarbonPink,
	OxocarbonCyan,
	OxocarbonTeal,
	OxocarbonLightBlue,
}

var (
	// Header
	LogoStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Italic(true)

	TitleTextStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	AccentStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(OxocarbonGreen)

	SynopsisStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Italic(true)

	// Rows
	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			MarginLeft(1)

	CardSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple).
				BorderLeft(true).
				PaddingLeft(2).
				MarginLeft(1)

	// Filter shortcut tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBlack).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1).
			MarginRight(1)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase02)

	// Status bar
	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	LocationStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Background(OxocarbonBase01).
			Padding(0, 1)

	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonPurple).
			Padding(1, 2).
			Background(OxocarbonBase00).
			Foreground(OxocarbonBase05)
)

// GlowColor returns the border color for a glow counter value
func GlowColor(tick int) lipgloss.Color {
	if tick < 0 {
		tick = -tick
	}
	return GlowColors[tick%len(GlowColors)]
}

// TypeColor returns the accent color of a content type
func TypeColor(t models.ContentType) lipgloss.Color {
	switch t {
	case models.ContentTypeMovie:
		return OxocarbonBlue
	case models.ContentTypeManga:
		return OxocarbonPink
	default:
		return OxocarbonPurple
	}
}

// StatusColor returns the color of an airing status
func StatusColor(s models.Status) lipgloss.Color {
	if s == models.StatusComplete {
		return OxocarbonBlue
	}
	return OxocarbonGreen
}

// Badge renders a pill with a colored foreground
func Badge(text string, color lipgloss.Color) string {
	return BadgeStyle.Foreground(color).Render(text)
}
