package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F99D"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#57C7FF"))
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C7C7C"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("#57C7FF")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C7C7C")).
			Padding(0, 1)

	Title = lipgloss.NewStyle().Bold(true)

	LatestBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#5AF78E")).
			Padding(0, 1)

	DeltaUp   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E")).Bold(true)
	DeltaDown = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	DeltaNew  = lipgloss.NewStyle().Foreground(lipgloss.Color("#57C7FF")).Bold(true)
)

// Tier accents
var (
	Sunflower = lipgloss.Color("#F2C14E")
	DeepSea   = lipgloss.Color("#2E6F95")
	Rust      = lipgloss.Color("#B7472A")
	Neutral   = lipgloss.Color("#8A8A8A")
)

// AccentColor maps a tier accent tag to its color; unknown tags are neutral.
func AccentColor(accent string) lipgloss.Color {
	switch accent {
	case "sunflower":
		return Sunflower
	case "deep-sea":
		return DeepSea
	case "rust":
		return Rust
	default:
		return Neutral
	}
}
