package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the terminal interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// ChattaTheme is the default theme, teal and gold like the web client
	ChattaTheme = TUITheme{
		Name:        "chatta",
		Description: "ChattaTrader teal with gold accents",

		Background: lipgloss.Color("#04252a"),
		Surface:    lipgloss.Color("#006670"),
		Border:     lipgloss.Color("#008d97"),

		Primary:   lipgloss.Color("#00b3bf"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ffd700"),
		Warning:   lipgloss.Color("#fb923c"),
		Error:     lipgloss.Color("#ef4444"),

		Text:     lipgloss.Color("#e5f6f7"),
		TextDim:  lipgloss.Color("#7caeb3"),
		TextMute: lipgloss.Color("#40666b"),
	}

	// TokyoNightTheme is a dark theme based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#8be9fd"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ff79c6"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = ChattaTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name, reporting whether the
// name was recognized.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
	}
	return ok
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	switch name {
	case "chatta":
		return ChattaTheme, true
	case "tokyonight":
		return TokyoNightTheme, true
	case "dracula":
		return DraculaTheme, true
	default:
		return TUITheme{}, false
	}
}

// TUIThemeNames returns the names of all built-in TUI themes.
func TUIThemeNames() []string {
	return []string{"chatta", "tokyonight", "dracula"}
}
