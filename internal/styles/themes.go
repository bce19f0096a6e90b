package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var themeMu sync.RWMutex

// ColorPalette holds the colors a theme defines.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`

	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
	TextSubtle  string `json:"textSubtle"`

	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	Note             string `json:"note"`
	ToastSuccessText string `json:"toastSuccessText"`
	ToastErrorText   string `json:"toastErrorText"`

	// MarkdownTheme is a glamour standard style name ("dark" or "light").
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme is a named palette.
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:          "#7C3AED",
			Secondary:        "#3B82F6",
			Accent:           "#F59E0B",
			Success:          "#10B981",
			Warning:          "#F59E0B",
			Error:            "#EF4444",
			TextPrimary:      "#F9FAFB",
			TextMuted:        "#6B7280",
			TextSubtle:       "#4B5563",
			BgSecondary:      "#1F2937",
			BgTertiary:       "#374151",
			BorderNormal:     "#374151",
			BorderActive:     "#7C3AED",
			Note:             "#FDE68A",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "dark",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:          "#6D28D9",
			Secondary:        "#2563EB",
			Accent:           "#B45309",
			Success:          "#047857",
			Warning:          "#B45309",
			Error:            "#B91C1C",
			TextPrimary:      "#111827",
			TextMuted:        "#6B7280",
			TextSubtle:       "#9CA3AF",
			BgSecondary:      "#F3F4F6",
			BgTertiary:       "#E5E7EB",
			BorderNormal:     "#D1D5DB",
			BorderActive:     "#6D28D9",
			Note:             "#A16207",
			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "light",
		},
	}
)

var themeRegistry = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	LightTheme.Name:   LightTheme,
}

var currentTheme = "default"

// IsValidTheme reports whether name is a registered theme.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// ListThemes returns the registered theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentThemeName returns the name of the applied theme.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ApplyTheme switches the palette to the named theme. Unknown names fall
// back to the default theme.
func ApplyTheme(name string) {
	themeMu.Lock()
	theme, ok := themeRegistry[name]
	if !ok {
		theme = DefaultTheme
	}
	currentTheme = theme.Name
	themeMu.Unlock()

	applyColors(theme.Colors)
}

func applyColors(c ColorPalette) {
	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	NoteColor = lipgloss.Color(c.Note)
	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}
