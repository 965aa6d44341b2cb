package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chattatrader/chattacli/internal/models"
	"github.com/chattatrader/chattacli/internal/render"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Connecting...")
	}

	if m.selecting {
		return m.renderSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header: conversation title and connection state
	title := "ChattaTrader"
	if m.conversation != nil {
		title = m.conversation.Title
	}
	link := subtitleStyle.Render("○ offline")
	if m.adapter != nil && m.adapter.Connected() {
		link = lipgloss.NewStyle().Foreground(colorSecondary).Render("● live")
	}
	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render(title),
		hintStyle.Render("  •  "),
		link,
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	var messagesContent string
	if m.messages.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input area
	var inputContent string
	switch {
	case m.loading:
		inputContent = m.spinner.View() + loadingStyle.Render(" ChattaTrader is thinking...")
	case m.recorder != nil && m.recorder.Recording():
		inputContent = recordingStyle.Render("● recording... ") +
			hintStyle.Render("press ctrl+r to stop")
	default:
		label := inputLabelStyle.Render("You")
		if m.imagePrompt {
			label = inputLabelStyle.Render("Image")
		}
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			label,
			m.textarea.View(),
		)
		if m.staged != nil {
			chip := fmt.Sprintf("♪ voice note staged (%.1f KB)",
				float64(len(m.staged.Data))/1024)
			inputContent = lipgloss.JoinVertical(
				lipgloss.Left,
				hintStyle.Render(chip+"  ctrl+s send, ctrl+x discard"),
				inputContent,
			)
		}
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.alert != "" {
		sections = append(sections, alertStyle.Width(contentWidth).Render(m.alert))
	} else if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ %v", m.err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-conversation placeholder
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to ChattaTrader")
	subtitle := welcomeStyle.Width(width).Render("Ask about a token, or tell me what to trade")

	content := lipgloss.JoinVertical(lipgloss.Center, "", icon, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+R", "Record"},
		{"Ctrl+O", "Image"},
		{"Ctrl+L", "Chats"},
		{"Esc", "Quit"},
	}
	if _, ok := m.pendingTrade(); ok {
		shortcuts = append([]struct {
			key  string
			desc string
		}{{"y/n", "Trade"}}, shortcuts...)
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with dispatched messages.
// Each message renders in isolation: one malformed payload cannot blank
// its siblings.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	msgs := m.messages.Current()
	for i, msg := range msgs {
		if i > 0 {
			content.WriteString("\n")
		}

		body := render.Dispatch(msg, bubbleWidth-4)

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ ChattaTrader")
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		}

		if m.cancelled[tradeKey(msg, i)] {
			content.WriteString("\n" + hintStyle.Render("  trade cancelled"))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}
