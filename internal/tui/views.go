package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avrlabs/cattleport/internal/portal"
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.viewHeader()
	var body string
	if m.ctrl.Session().Authenticated() {
		body = JoinHorizontal(3, m.viewMenu(), m.viewPanel(m.layout.ContentWidth))
	} else {
		body = m.viewPanel(m.layout.Width - 4)
	}

	parts := []string{header, body}
	if m.alert != "" {
		parts = append(parts, m.styles.Error.Render("! "+m.alert)+m.styles.Footer.Render("  (esc to dismiss)"))
	}
	parts = append(parts, m.viewFooter())

	return JoinVertical(2, parts...) + "\n"
}

func (m *Model) viewHeader() string {
	title := m.styles.Title.Render("AVR CATTLE HEALTH PORTAL")

	mode := m.styles.Info.Render("LIVE")
	if m.ctrl.MockMode() {
		mode = m.styles.Warning.Render("MOCK")
	}

	right := mode
	if u := m.ctrl.Session().User; u != nil {
		avatar := m.styles.Avatar.Render(m.ctrl.Session().AvatarInitial())
		right = avatar + " " + m.styles.Base.Render(u.Name) + "  " + mode
	}

	gap := m.layout.Width - 2 - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return " " + title + strings.Repeat(" ", gap) + right
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	for i, p := range portal.MenuPanels() {
		label := Truncate(p.Title(), SidebarWidth-4)
		line := padRight(label, SidebarWidth-2)
		switch {
		case m.focusMenu && i == m.menuCursor:
			b.WriteString(m.styles.MenuCursor.Render(line))
		case i == m.menuActive:
			b.WriteString(m.styles.MenuActive.Render(line))
		default:
			b.WriteString(m.styles.MenuItem.Render(line))
		}
		b.WriteString("\n")
	}
	return SectionBox("MENU", strings.TrimRight(b.String(), "\n"), SidebarWidth, m.styles)
}

func (m *Model) viewPanel(width int) string {
	switch m.panel {
	case portal.PanelAuth:
		return m.viewAuth(width)
	case portal.PanelDashboard:
		return m.viewDashboard(width)
	case portal.PanelProfile:
		return m.viewProfile(width)
	case portal.PanelPredictor:
		return m.viewPredictor(width)
	default:
		return m.viewPlaceholder(width)
	}
}

func (m *Model) viewAuth(width int) string {
	tab := 0
	if m.ctrl.Session().ActiveTab == session.TabLogin {
		tab = 1
	}

	parts := []string{TabBar([]string{"Register", "Login"}, tab, m.styles)}

	region := portal.RegionRegister
	if tab == 1 {
		region = portal.RegionLogin
	}
	if msg := m.viewNotice(region); msg != "" {
		parts = append(parts, msg)
	}

	if m.otpVisible {
		if msg := m.viewNotice(portal.RegionOTP); msg != "" {
			parts = append(parts, msg)
		}
		if m.otpForm != nil {
			parts = append(parts, m.otpForm.View())
		}
		parts = append(parts, m.styles.Dim.Render("ctrl+r resend code"))
	} else if m.authForm != nil {
		parts = append(parts, m.authForm.View())
	}

	if m.ctrl.MockMode() && !m.ctrl.Session().Authenticated() {
		parts = append(parts, m.styles.Dim.Render("ctrl+b mock login"))
	}

	title := "LOGIN / REGISTER"
	if m.otpVisible {
		title = "VERIFY OTP"
	}
	return SectionBox(title, JoinVertical(2, parts...), width, m.styles)
}

func (m *Model) viewDashboard(width int) string {
	u := m.ctrl.Session().User
	welcome := "Welcome!"
	if u != nil {
		welcome = fmt.Sprintf("Welcome, %s!", u.Name)
	}

	cardWidth := (width - 12) / 4
	cards := JoinHorizontal(2,
		StatCard("Farmers", m.stats.Farmers, cardWidth, m.styles),
		StatCard("Cows", m.stats.Cows, cardWidth, m.styles),
		StatCard("Bulls", m.stats.Bulls, cardWidth, m.styles),
		StatCard("Total Cattle", m.stats.Total(), cardWidth, m.styles),
	)

	content := JoinVertical(2,
		m.styles.Bold.Render(welcome),
		m.styles.Dim.Render("Herd counters for your program area."),
		cards,
	)
	return SectionBox("DASHBOARD", content, width, m.styles)
}

func (m *Model) viewProfile(width int) string {
	var parts []string
	if msg := m.viewNotice(portal.RegionProfile); msg != "" {
		parts = append(parts, msg)
	}

	if m.profForm != nil {
		parts = append(parts, m.profForm.View())
		parts = append(parts, m.styles.Dim.Render("Mobile number and role cannot be changed."))
	} else if m.profView != nil {
		u := m.profView.User
		avatar := m.styles.Avatar.Render(m.profView.Avatar)
		rows := []string{
			avatar + "  " + m.styles.Bold.Render(u.Name),
			"",
			m.profileRow("Mobile", u.Mobile),
			m.profileRow("Village", u.Village),
			m.profileRow("Mandal", u.Mandal),
			m.profileRow("District", u.District),
			m.profileRow("Role", u.Role),
			"",
			m.styles.Dim.Render("[e] edit profile"),
		}
		parts = append(parts, strings.Join(rows, "\n"))
	}

	return SectionBox("MY PROFILE", JoinVertical(2, parts...), width, m.styles)
}

func (m *Model) profileRow(label, value string) string {
	return m.styles.Dim.Render(padRight(label, 10)) + m.styles.Base.Render(value)
}

func (m *Model) viewPredictor(width int) string {
	steps := []string{
		predictor.StepDetails.String(),
		predictor.StepPredict.String(),
		predictor.StepResult.String(),
	}
	parts := []string{StepIndicator(steps, int(m.step)-1, m.styles)}

	if msg := m.viewNotice(portal.RegionCattle); msg != "" {
		parts = append(parts, msg)
	}

	switch m.step {
	case predictor.StepDetails:
		if m.cattleForm != nil {
			parts = append(parts, m.cattleForm.View())
		}

	case predictor.StepPredict:
		if rec := m.ctrl.Session().Cattle; rec != nil {
			parts = append(parts, m.styles.Dim.Render(
				fmt.Sprintf("Cattle %s · %s · %d years", rec.ID, rec.Gender, rec.Age)))
		}
		if msg := m.viewNotice(portal.RegionPrediction); msg != "" {
			parts = append(parts, msg)
		}
		if m.preview != nil {
			parts = append(parts, m.styles.Success.Render(
				fmt.Sprintf("✓ %s (%s, %d bytes)", m.preview.name, m.preview.mime, m.preview.size)))
		}
		if m.predictForm != nil {
			parts = append(parts, m.predictForm.View())
		}

	case predictor.StepResult:
		if msg := m.viewNotice(portal.RegionPrediction); msg != "" {
			parts = append(parts, msg)
		}
		if m.result != nil {
			parts = append(parts, m.viewResultCard(*m.result))
		}
		hints := "[y] copy result    [n] new prediction"
		if m.copied {
			hints += "    " + m.styles.Success.Render("copied!")
		}
		parts = append(parts, m.styles.Dim.Render(hints))
	}

	return SectionBox("DISEASE PREDICTOR", JoinVertical(2, parts...), width, m.styles)
}

func (m *Model) viewResultCard(card predictor.ResultCard) string {
	body := strings.Join(card.Lines(), "\n")
	if card.Positive() {
		return m.styles.ResultPositive.Render(body)
	}
	return m.styles.ResultNegative.Render(body)
}

func (m *Model) viewPlaceholder(width int) string {
	body := strings.Join(WrapText(m.placeholderContent(m.panel), width-6), "\n")
	return SectionBox(strings.ToUpper(m.panel.Title()), m.styles.Base.Render(body), width, m.styles)
}

func (m *Model) viewNotice(region portal.Region) string {
	n, ok := m.messages[region]
	if !ok {
		return ""
	}
	switch n.tone {
	case portal.ToneSuccess:
		return m.styles.Success.Render(n.text)
	case portal.ToneError:
		return m.styles.Error.Render(n.text)
	default:
		return m.styles.Base.Render(n.text)
	}
}

func (m *Model) viewFooter() string {
	if m.busy {
		return " " + m.spin.View() + m.styles.Dim.Render(" Working...")
	}

	hints := []KeyHint{}
	if m.ctrl.Session().Authenticated() {
		hints = append(hints, KeyHint{Key: "esc", Label: "menu"}, KeyHint{Key: "ctrl+x", Label: "logout"})
	} else if m.panel == portal.PanelAuth {
		hints = append(hints, KeyHint{Key: "ctrl+t", Label: "switch tab"})
	}
	hints = append(hints, KeyHint{Key: "ctrl+c", Label: "quit"})
	return " " + KeyHints(hints, m.styles)
}
