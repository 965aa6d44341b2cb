package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chattatrader/chattacli/internal/models"
)

// loadConversations returns a command that loads the conversation list.
func (m Model) loadConversations() tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		if dir == nil {
			return conversationsLoadedMsg{err: fmt.Errorf("conversation directory not available")}
		}
		convs, err := dir.List()
		return conversationsLoadedMsg{conversations: convs, err: err}
	}
}

// updateSelector handles updates while the conversation selector is open.
func (m Model) updateSelector(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case conversationsLoadedMsg:
		m.listLoading = false
		if msg.err != nil {
			m.selecting = false
			m.err = msg.err
		} else {
			m.selectorList = msg.conversations
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "esc":
			m.selecting = false
			m.selectorList = nil
			m.cursor = 0
			m.filter = ""

		case "up", "ctrl+k":
			if n := len(m.filteredConversations()); n > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = n - 1
				}
			}

		case "down", "ctrl+j":
			if n := len(m.filteredConversations()); n > 0 {
				m.cursor++
				if m.cursor >= n {
					m.cursor = 0
				}
			}

		case "enter":
			filtered := m.filteredConversations()
			if len(filtered) > 0 && m.cursor < len(filtered) {
				return m.selectConversation(filtered[m.cursor].ID)
			}

		case "backspace":
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
				m.cursor = 0
			}

		default:
			if len(msg.String()) == 1 {
				r := []rune(msg.String())[0]
				if r >= ' ' && r <= '~' {
					m.filter += msg.String()
					m.cursor = 0
				}
			}
		}
	}

	return m, nil
}

// selectConversation swaps the active conversation in: the visible message
// sequence is fully replaced, nothing merges across conversations.
func (m Model) selectConversation(id string) (tea.Model, tea.Cmd) {
	conv, err := m.dir.Select(id)
	if err != nil {
		m.selecting = false
		m.err = err
		return m, nil
	}

	m.conversation = conv
	m.messages.ReplaceAll(conv.Messages)
	m.cancelled = make(map[string]bool)
	m.err = nil
	m.loading = false

	m.selecting = false
	m.selectorList = nil
	m.cursor = 0
	m.filter = ""

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// filteredConversations returns the list filtered by title substring,
// case-insensitively.
func (m Model) filteredConversations() []*models.Conversation {
	if m.filter == "" {
		return m.selectorList
	}

	needle := strings.ToLower(m.filter)
	var filtered []*models.Conversation
	for _, conv := range m.selectorList {
		if strings.Contains(strings.ToLower(conv.Title), needle) {
			filtered = append(filtered, conv)
		}
	}
	return filtered
}

// renderSelector renders the conversation picker overlay.
func (m Model) renderSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	title := selectorTitleStyle.Render("💬 Chats")
	if m.conversation != nil {
		title += hintStyle.Render(fmt.Sprintf("  (current: %s)", m.conversation.Title))
	}
	content.WriteString(title)
	content.WriteString("\n\n")

	if m.filter != "" {
		content.WriteString(inputLabelStyle.Render("🔍 ") + m.filter + "_")
		content.WriteString("\n\n")
	}

	if m.listLoading {
		content.WriteString(loadingStyle.Render("  Loading chats..."))
	} else if len(m.selectorList) == 0 {
		content.WriteString(hintStyle.Render("  No chats yet"))
	} else {
		filtered := m.filteredConversations()
		if len(filtered) == 0 {
			content.WriteString(hintStyle.Render("  No chats match filter"))
		} else {
			maxItems := 8
			startIdx := 0
			if m.cursor >= maxItems {
				startIdx = m.cursor - maxItems + 1
			}
			endIdx := startIdx + maxItems
			if endIdx > len(filtered) {
				endIdx = len(filtered)
			}

			if startIdx > 0 {
				content.WriteString(hintStyle.Render("  ↑ more above"))
				content.WriteString("\n")
			}

			for i := startIdx; i < endIdx; i++ {
				conv := filtered[i]
				cursor := "  "
				style := selectorItemStyle
				if i == m.cursor {
					cursor = selectorCursorStyle.Render("▸ ")
					style = selectorSelectedStyle
				}

				line := cursor + style.Render(conv.Title)
				line += hintStyle.Render(fmt.Sprintf("  %d messages", len(conv.Messages)))
				content.WriteString(line)
				content.WriteString("\n")
			}

			if endIdx < len(filtered) {
				content.WriteString(hintStyle.Render("  ↓ more below"))
				content.WriteString("\n")
			}
		}
	}

	content.WriteString("\n")
	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Open"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}
