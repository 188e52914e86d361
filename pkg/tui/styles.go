package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorMoveBg      = lipgloss.Color("#3E2F1F")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	StreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOrange)

	PointsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Tab styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Padding(0, 1)
)

// Task row styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	NormalStyle = lipgloss.NewStyle()

	CompleteStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DoneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	TrackingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	MoveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOrange).
			Background(ColorMoveBg)
)

// Priority styles
var (
	PriorityHighStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// Stats styles
var (
	ChartBarStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(22)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)
)

// Badge styles
var (
	BadgeUnlockedStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	BadgeLockedStyle = lipgloss.NewStyle().
				Foreground(ColorGrayDim)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)
)

// Status icons
const (
	IconComplete   = "✓"
	IconIncomplete = "○"
	IconTracking   = "▶"
	IconPaused     = "⏸"
	IconMove       = "↕"
	IconStreak     = "🔥"
)
