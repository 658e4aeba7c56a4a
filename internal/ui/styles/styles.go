// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#777777"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#696969"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}

	// Promotion accents
	BrandColor         = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FF9F43"}
	PriceColor         = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	OriginalPriceColor = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#777777"}
	SavingsColor       = lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FF9F43"}

	// Course package tags in the member list
	Package30Color = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	Package60Color = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#73F59F"}

	// Buttons
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#C0392B"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#E74C3C"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#2D2D2D"}

	// Form
	FormLabelColor        = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#8C8C8C"}
	FormFocusedLabelColor = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"}
	FocusBorderColor      = lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FF9F43"}

	// Toasts and overlays
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = StatusInfoColor
	ToastBorderWarnColor    = StatusWarningColor
	OverlayBorderColor      = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#8C8C8C"}
	OverlayTitleColor       = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#C9C9C9"}

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FFFFFF"}
)

var (
	BrandStyle    = lipgloss.NewStyle().Bold(true).Foreground(BrandColor)
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	SubtitleStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle    = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle  = lipgloss.NewStyle().Foreground(StatusSuccessColor)

	PriceStyle         = lipgloss.NewStyle().Bold(true).Foreground(PriceColor)
	OriginalPriceStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(OriginalPriceColor)
	SavingsStyle       = lipgloss.NewStyle().Foreground(SavingsColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(TextMutedColor).
				Background(ButtonDisabledBgColor)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	CardSelectedStyle = CardStyle.BorderForeground(FocusBorderColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)

// BadgeStyle returns a filled label style in the given colour.
func BadgeStyle(bg lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(ButtonTextColor).
		Background(bg)
}
