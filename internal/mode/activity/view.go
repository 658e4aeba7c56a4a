package activity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/ui/styles"
)

const (
	maxContentWidth = 76
	cardWidth       = 34
	cardGap         = 2
)

// Copy shown on the page.
const (
	FullNotice       = "报名名额已满，感谢您的关注！"
	SlotsLabel       = "剩余名额"
	OpenBadge        = "报名进行中"
	EndedBadge       = "活动已结束"
	NotStartedPrefix = "距离开始"
	SubmitLabel      = "立即报名"
	SubmittingLabel  = "提交中..."
)

var (
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	labelStyle        = lipgloss.NewStyle().Foreground(styles.FormLabelColor)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.FormFocusedLabelColor)
	inputStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(styles.BorderDefaultColor).Padding(0, 1)
	focusedInputStyle = inputStyle.BorderForeground(styles.FocusBorderColor)
	fieldErrorStyle   = styles.ErrorStyle.PaddingLeft(1)
)

// View renders the visible part of the page.
func (m Model) View() string {
	if m.height <= 0 {
		return m.body()
	}
	return m.viewport.View()
}

// contentWidth is the width of the centred page column.
func (m Model) contentWidth() int {
	w := m.width - 2
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// body renders the whole page, top to bottom.
func (m Model) body() string {
	width := m.contentWidth()

	sections := []string{
		m.renderHeader(width),
		m.renderPackages(width),
		m.renderNotices(width),
	}
	if m.description != "" {
		sections = append(sections, m.description)
	}
	sections = append(sections,
		m.renderSchedule(),
		m.renderRegistration(width),
		m.renderAddress(),
	)

	page := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > width {
		page = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, page)
	}
	return page
}

func (m Model) renderHeader(width int) string {
	var lines []string
	if m.activity.Brand != "" {
		lines = append(lines, styles.BrandStyle.Render(m.activity.Brand))
	}
	lines = append(lines, styles.TitleStyle.Render(m.activity.Title))
	if m.activity.Subtitle != "" {
		lines = append(lines, styles.SubtitleStyle.Render(m.activity.Subtitle))
	}
	lines = append(lines, "")

	left := m.renderPhaseBadge()
	if m.activity.Tagline != "" {
		left = styles.BadgeStyle(styles.StatusErrorColor).Render("🔥 "+m.activity.Tagline) + " " + left
	}
	right := m.renderSlots()
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	lines = append(lines, left+strings.Repeat(" ", gap)+right, "")

	return strings.Join(lines, "\n")
}

func (m Model) renderPhaseBadge() string {
	switch m.state.Phase {
	case domain.PhaseNotStarted:
		return styles.BadgeStyle(styles.StatusWarningColor).Render(NotStartedPrefix + " " + m.state.Countdown)
	case domain.PhaseOpen:
		return styles.BadgeStyle(styles.StatusSuccessColor).Render(OpenBadge)
	default:
		return styles.BadgeStyle(styles.ButtonDisabledBgColor).Render(EndedBadge)
	}
}

// renderSlots shows "剩余名额 N / capacity", green while slots remain.
func (m Model) renderSlots() string {
	color := styles.StatusErrorColor
	if m.slots.RemainingSlots > 0 {
		color = styles.StatusSuccessColor
	}
	value := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d / %d", m.slots.RemainingSlots, m.activity.Capacity))
	return styles.MutedStyle.Render(SlotsLabel+" ") + value
}

func (m Model) renderPackages(width int) string {
	if len(m.form.packages) == 0 {
		return ""
	}

	cards := make([]string, len(m.form.packages))
	for i, p := range m.form.packages {
		cards[i] = zone.Mark(makePackageZoneID(i), m.renderCard(p, i == m.form.selected))
	}

	// Side by side when two cards fit, stacked otherwise.
	if width >= 2*cardWidth+cardGap {
		row := make([]string, 0, 2*len(cards)-1)
		for i, c := range cards {
			if i > 0 {
				row = append(row, strings.Repeat(" ", cardGap))
			}
			row = append(row, c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"
}

func (m Model) renderCard(p domain.Package, selected bool) string {
	style := styles.CardStyle
	marker := "○"
	if selected {
		style = styles.CardSelectedStyle
		marker = "●"
	}

	title := fmt.Sprintf("%s 📦 %s · %d课时", marker, p.Title, p.Hours)
	price := styles.PriceStyle.Render(domain.FormatYuan(p.Price))
	if p.OriginalPrice > p.Price {
		price += "  " + styles.OriginalPriceStyle.Render(domain.FormatYuan(p.OriginalPrice))
	}
	if s := p.Savings(); s > 0 {
		price += "  " + styles.SavingsStyle.Render("省"+domain.FormatYuan(s))
	}

	lines := []string{sectionTitleStyle.Render(title), price}
	if p.Validity != "" {
		lines = append(lines, styles.MutedStyle.Render("⏱ "+p.Validity))
	}
	return style.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

// renderNotices numbers the notices and wraps them inside the section box.
// Continuation lines align under the text, not the number.
func (m Model) renderNotices(width int) string {
	if len(m.activity.Notices) == 0 {
		return ""
	}

	var rows []string
	for i, notice := range m.activity.Notices {
		prefix := fmt.Sprintf(" %d. ", i+1)
		indent := strings.Repeat(" ", lipgloss.Width(prefix))
		limit := max(width-2-len(prefix)-1, 8)
		for j, line := range strings.Split(wrapText(notice, limit), "\n") {
			if j == 0 {
				rows = append(rows, prefix+line)
			} else {
				rows = append(rows, indent+line)
			}
		}
	}
	return styles.RenderSection("⚠️ 活动说明", rows, width, styles.StatusWarningColor) + "\n"
}

// wrapText breaks on spaces where it can and hard-wraps long runs, which
// is what unspaced Chinese text needs.
func wrapText(s string, limit int) string {
	return wrap.String(wordwrap.String(s, limit), limit)
}

func (m Model) renderSchedule() string {
	lines := []string{
		"",
		sectionTitleStyle.Render("⏰ 活动时间") + "  " + formatWindow(m.window),
	}
	if m.activity.AgeRange != "" {
		lines = append(lines, "", styles.BadgeStyle(styles.StatusInfoColor).Render("👶 适用年龄："+m.activity.AgeRange))
	}
	return strings.Join(lines, "\n") + "\n"
}

// formatWindow renders "2025年10月18日 00:00-23:59", repeating the date when
// the window spans days.
func formatWindow(w domain.ActivityWindow) string {
	const day, clock = "2006年1月2日", "15:04"
	end := w.End.In(w.Start.Location())
	if w.Start.Format(day) == end.Format(day) {
		return w.Start.Format(day+" "+clock) + "-" + end.Format(clock)
	}
	return w.Start.Format(day+" "+clock) + " - " + end.Format(day+" "+clock)
}

// renderRegistration shows the form, or what replaces it.
func (m Model) renderRegistration(width int) string {
	switch {
	case m.Registered():
		msg := m.confirmation
		if msg == "" {
			msg = domain.MsgRegistered
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.StatusSuccessColor).
			Padding(0, 2).
			Render(styles.SuccessStyle.Render("✅ "+msg)+"\n"+styles.MutedStyle.Render(domain.MsgRegistered)) + "\n"
	case m.slots.IsFull:
		return styles.BadgeStyle(styles.StatusErrorColor).Padding(1, 3).Render(FullNotice) + "\n"
	}
	return m.renderForm(width)
}

func (m Model) renderForm(width int) string {
	f := m.form
	var b strings.Builder

	b.WriteString(m.renderField("姓名", f.name.View(), zoneNameInput, f.focus == focusName, f.errors[domain.FieldName]))
	b.WriteString(m.renderField("联系电话", f.phone.View(), zonePhoneInput, f.focus == focusPhone, f.errors[domain.FieldPhone]))

	b.WriteString(label("选择课程包", f.focus == focusPackage) + "\n")
	for i, p := range f.packages {
		marker := "○"
		style := styles.SubtitleStyle
		if i == f.selected {
			marker = "●"
			style = lipgloss.NewStyle().Bold(true).Foreground(styles.FocusBorderColor)
		}
		option := style.Render(fmt.Sprintf(" %s %s  %d课时 / %s", marker, p.Title, p.Hours, domain.FormatYuan(p.Price)))
		b.WriteString(zone.Mark(makeOptionZoneID(i), option) + "\n")
	}
	if msg := f.errors[domain.FieldCoursePackage]; msg != "" {
		b.WriteString(fieldErrorStyle.Render(msg) + "\n")
	}
	b.WriteString("\n")

	switch m.state.Phase {
	case domain.PhaseNotStarted:
		b.WriteString(styles.MutedStyle.Render(domain.MsgNotStarted) + "\n")
	case domain.PhaseEnded:
		b.WriteString(styles.MutedStyle.Render(domain.MsgEnded) + "\n")
	}

	b.WriteString(zone.Mark(zoneSubmitButton, m.renderButton(width)) + "\n")
	return b.String()
}

func (m Model) renderField(name, input, zoneID string, focused bool, errMsg string) string {
	style := inputStyle
	if focused {
		style = focusedInputStyle
	}
	out := label(name, focused) + "\n" + zone.Mark(zoneID, style.Width(inputWidth+3).Render(input)) + "\n"
	if errMsg != "" {
		out += fieldErrorStyle.Render(errMsg) + "\n"
	}
	return out
}

func label(text string, focused bool) string {
	if focused {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) renderButton(width int) string {
	w := min(width, inputWidth+5)
	switch {
	case m.submitting:
		return styles.DisabledButtonStyle.Width(w).Align(lipgloss.Center).
			Render(m.spinner.View() + " " + SubmittingLabel)
	case m.form.focus == focusSubmit:
		return styles.PrimaryButtonFocusedStyle.Width(w).Align(lipgloss.Center).Render(SubmitLabel)
	default:
		return styles.PrimaryButtonStyle.Width(w).Align(lipgloss.Center).Render(SubmitLabel)
	}
}

func (m Model) renderAddress() string {
	if len(m.activity.Address) == 0 {
		return ""
	}
	lines := []string{"", sectionTitleStyle.Render("📍 场馆地址")}
	for _, line := range m.activity.Address {
		lines = append(lines, styles.SubtitleStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}
