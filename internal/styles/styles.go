package styles

import "github.com/charmbracelet/lipgloss"

// Color palette, set by ApplyTheme. Initial values are the default dark theme.
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")

	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")
	TextSubtle  = lipgloss.Color("#4B5563")

	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	NoteColor             = lipgloss.Color("#FDE68A") // Sticky yellow
	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")

	// CurrentMarkdownTheme is the glamour standard style matching the palette.
	CurrentMarkdownTheme = "dark"
)

// Text styles
var (
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	KeyHint  lipgloss.Style
	Logo     lipgloss.Style
	Heading  lipgloss.Style
	ErrorMsg lipgloss.Style
)

// Note card styles
var (
	NoteCard         lipgloss.Style
	NoteCardSelected lipgloss.Style
	NoteTitle        lipgloss.Style
)

// Bar, toast and tab styles
var (
	Header          lipgloss.Style
	Footer          lipgloss.Style
	ToastSuccess    lipgloss.Style
	ToastError      lipgloss.Style
	TabTextActive   lipgloss.Style
	TabTextInactive lipgloss.Style
)

// Modal and button styles
var (
	ModalBox            lipgloss.Style
	ModalTitle          lipgloss.Style
	Button              lipgloss.Style
	ButtonFocused       lipgloss.Style
	ButtonDanger        lipgloss.Style
	ButtonDangerFocused lipgloss.Style
	InputLabel          lipgloss.Style
	InputBox            lipgloss.Style
	InputBoxFocused     lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every style from the current palette.
func rebuildStyles() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Body = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)
	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)
	Logo = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Heading = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	ErrorMsg = lipgloss.NewStyle().Foreground(Error)

	NoteCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)
	NoteCardSelected = NoteCard.BorderForeground(NoteColor)
	NoteTitle = lipgloss.NewStyle().Bold(true).Foreground(NoteColor)

	Header = lipgloss.NewStyle().Foreground(TextPrimary)
	Footer = lipgloss.NewStyle().Foreground(TextMuted)
	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)
	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastErrorTextColor).
		Bold(true).
		Padding(0, 1)
	TabTextActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true).
		Padding(0, 1)
	TabTextInactive = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)
	Button = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 2)
	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true).
		Padding(0, 2)
	ButtonDanger = lipgloss.NewStyle().
		Foreground(Error).
		Background(BgTertiary).
		Padding(0, 2)
	ButtonDangerFocused = lipgloss.NewStyle().
		Foreground(ToastErrorTextColor).
		Background(Error).
		Bold(true).
		Padding(0, 2)
	InputLabel = lipgloss.NewStyle().Foreground(TextMuted)
	InputBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderNormal)
	InputBoxFocused = InputBox.BorderForeground(BorderActive)
}
