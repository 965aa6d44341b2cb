package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chattatrader/chattacli/internal/models"
	"github.com/chattatrader/chattacli/internal/store"
)

// RunChat starts the chat TUI for the given conversation. Inbound transport
// messages are funneled into the program's message loop, so they commit to
// the store in arrival order with everything the user does.
func RunChat(adapter TransportInterface, dir DirectoryInterface, messages *store.MessageStore, recorder RecorderInterface, confirm ConfirmFunc, conv *models.Conversation) error {
	m := NewChatModel(adapter, dir, messages, recorder, confirm, conv)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if adapter != nil {
		adapter.OnMessage(func(msg models.Message) {
			p.Send(inboundMsg{message: msg})
		})
	}

	_, err := p.Run()
	return err
}
