package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chattatrader/chattacli/internal/capture"
	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
	"github.com/chattatrader/chattacli/internal/store"
)

// Message types for the TUI
type (
	// inboundMsg carries a message delivered by the transport. Transport
	// events enter the model through the program's message loop, so
	// transport appends and UI appends serialize in arrival order.
	inboundMsg struct {
		message models.Message
	}
	// tradeResultMsg is the outcome of a confirm operation.
	tradeResultMsg struct {
		trade  models.Trade
		result TradeResult
		err    error
	}
	// conversationsLoadedMsg is sent when the selector finishes loading
	conversationsLoadedMsg struct {
		conversations []*models.Conversation
		err           error
	}
	errMsg struct {
		err error
	}
)

// TradeResult is what the injected confirm operation reports back.
type TradeResult struct {
	Success bool
	Hash    string
	Message string
}

// ConfirmFunc executes a confirmed trade. Its outcome always comes back to
// the stream as a new appended message, never as an edit of the prompt.
type ConfirmFunc func(models.Trade) (TradeResult, error)

// TransportInterface defines the transport operations needed by the TUI
type TransportInterface interface {
	Send(models.Message) error
	OnMessage(func(models.Message))
	Connected() bool
	Close() error
}

// DirectoryInterface defines the conversation directory operations needed
// by the TUI
type DirectoryInterface interface {
	List() ([]*models.Conversation, error)
	Select(id string) (*models.Conversation, error)
	AppendMessage(id string, msg models.Message) error
}

// RecorderInterface defines the audio capture operations needed by the TUI
type RecorderInterface interface {
	Start() error
	Stop() (*models.Attachment, error)
	Recording() bool
	Abort()
}

// Model represents the chat TUI state
type Model struct {
	adapter  TransportInterface
	dir      DirectoryInterface
	messages *store.MessageStore
	recorder RecorderInterface
	confirm  ConfirmFunc

	conversation *models.Conversation

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading     bool
	ready       bool
	err         error
	alert       string
	staged      *models.Attachment
	imagePrompt bool
	cancelled   map[string]bool

	// Conversation selector state
	selecting    bool
	selectorList []*models.Conversation
	cursor       int
	filter       string
	listLoading  bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat TUI model for an already selected
// conversation.
func NewChatModel(adapter TransportInterface, dir DirectoryInterface, messages *store.MessageStore, recorder RecorderInterface, confirm ConfirmFunc, conv *models.Conversation) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if conv != nil {
		messages.ReplaceAll(conv.Messages)
	}

	return Model{
		adapter:      adapter,
		dir:          dir,
		messages:     messages,
		recorder:     recorder,
		confirm:      confirm,
		conversation: conv,
		textarea:     ta,
		spinner:      s,
		cancelled:    make(map[string]bool),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selecting {
		return m.updateSelector(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		if m.alert != "" {
			// A permission alert blocks until dismissed.
			if msg.String() == "enter" || msg.String() == "esc" {
				m.alert = ""
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "esc":
			return m, m.quit()

		case "ctrl+l":
			m.selecting = true
			m.listLoading = true
			m.cursor = 0
			m.filter = ""
			return m, m.loadConversations()

		case "ctrl+r":
			return m.toggleRecording()

		case "ctrl+s":
			if m.staged != nil {
				att := m.staged
				m.staged = nil
				return m, m.sendAttachment(att)
			}

		case "ctrl+x":
			m.staged = nil

		case "ctrl+o":
			m.imagePrompt = true
			m.textarea.Placeholder = "Path to image file..."
			m.textarea.Reset()

		case "y", "n", "c":
			if m.textarea.Value() == "" {
				if model, cmd, handled := m.handleTradeKey(msg.String()); handled {
					return model, cmd
				}
			}

		case "enter":
			if m.imagePrompt {
				path := strings.TrimSpace(m.textarea.Value())
				m.imagePrompt = false
				m.textarea.Reset()
				m.textarea.Placeholder = "Type your message..."
				if path != "" {
					return m, m.captureImage(path)
				}
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" || m.recorder.Recording() {
				break
			}
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, m.quit()
			}
			if input == "/chats" {
				m.textarea.Reset()
				m.selecting = true
				m.listLoading = true
				m.cursor = 0
				m.filter = ""
				return m, m.loadConversations()
			}

			m.textarea.Reset()
			return m.sendText(input)
		}

	case inboundMsg:
		m.loading = false
		m.appendMessage(msg.message)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tradeResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.appendMessage(tradeOutcomeMessage(m.conversationID(), msg.trade, msg.result))
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case stagedImageMsg:
		// Image capture is single-shot: selection sends immediately.
		return m, m.sendAttachment(msg.att)

	case errMsg:
		m.loading = false
		if apierrors.IsPermissionError(msg.err) {
			m.alert = msg.err.Error()
		} else {
			m.err = msg.err
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if _, ok := msg.(tea.KeyMsg); ok && m.alert == "" {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// quit aborts any active recording and leaves; the caller closes the
// transport after the program returns.
func (m Model) quit() tea.Cmd {
	m.recorder.Abort()
	return tea.Quit
}

func (m Model) conversationID() string {
	if m.conversation == nil {
		return ""
	}
	return m.conversation.ID
}

// appendMessage commits one message to the store and persists it onto the
// active conversation.
func (m *Model) appendMessage(msg models.Message) {
	m.messages.Append(msg)
	if id := m.conversationID(); id != "" && m.dir != nil {
		// Persistence is best effort; the live view is the store.
		_ = m.dir.AppendMessage(id, msg)
	}
}

// sendText appends the optimistic user copy and emits it on the transport.
func (m Model) sendText(input string) (tea.Model, tea.Cmd) {
	msg := models.NewTextMessage(m.conversationID(), input)
	m.appendMessage(msg)
	m.updateViewport()
	m.viewport.GotoBottom()

	m.loading = true
	m.err = nil

	return m, tea.Batch(
		m.emit(msg),
		m.spinner.Tick,
	)
}

// sendAttachment appends the staged attachment and emits it.
func (m Model) sendAttachment(att *models.Attachment) tea.Cmd {
	msg := models.NewAttachmentMessage(m.conversationID(), att)
	m.appendMessage(msg)
	m.updateViewport()
	m.viewport.GotoBottom()
	return m.emit(msg)
}

// emit sends a message over the transport. A failed send leaves the
// optimistic copy as the terminal state; the error only surfaces in the
// status line.
func (m Model) emit(msg models.Message) tea.Cmd {
	adapter := m.adapter
	return func() tea.Msg {
		if adapter == nil {
			return errMsg{err: apierrors.NewTransportError("send", "not connected")}
		}
		if err := adapter.Send(msg); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// captureImageFile is swappable in tests.
var captureImageFile = capture.CaptureImage

func (m Model) captureImage(path string) tea.Cmd {
	return func() tea.Msg {
		att, err := captureImageFile(path)
		if err != nil {
			return errMsg{err: err}
		}
		return stagedImageMsg{att: att}
	}
}

type stagedImageMsg struct {
	att *models.Attachment
}

// toggleRecording flips the audio capture state machine.
func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recorder.Recording() {
		att, err := m.recorder.Stop()
		if err != nil {
			m.err = err
			return m, nil
		}
		if att != nil {
			m.staged = att
		}
		return m, nil
	}

	if err := m.recorder.Start(); err != nil {
		if apierrors.IsPermissionError(err) {
			m.alert = "Could not access the microphone. Please check your permissions."
		} else {
			m.err = err
		}
	}
	return m, nil
}

// pendingTrade returns the newest uncompleted, uncancelled trade prompt.
func (m Model) pendingTrade() (models.Message, bool) {
	msgs := m.messages.Current()
	for i := len(msgs) - 1; i >= 0; i-- {
		msg := msgs[i]
		if msg.Variant != models.VariantTrade || msg.Trade == nil {
			continue
		}
		if msg.Trade.Completed || m.cancelled[tradeKey(msg, i)] {
			return models.Message{}, false
		}
		return msg, true
	}
	return models.Message{}, false
}

func tradeKey(msg models.Message, index int) string {
	if msg.ID != "" {
		return msg.ID
	}
	return fmt.Sprintf("#%d", index)
}

// handleTradeKey handles y/n/c for the pending trade prompt.
func (m Model) handleTradeKey(key string) (tea.Model, tea.Cmd, bool) {
	pending, ok := m.pendingTrade()
	if !ok {
		return m, nil, false
	}
	trade := *pending.Trade

	switch key {
	case "y":
		m.loading = true
		m.err = nil
		confirm := m.confirm
		return m, tea.Batch(
			func() tea.Msg {
				if confirm == nil {
					return tradeResultMsg{err: fmt.Errorf("trade confirmation unavailable")}
				}
				result, err := confirm(trade)
				return tradeResultMsg{trade: trade, result: result, err: err}
			},
			m.spinner.Tick,
		), true

	case "n":
		msgs := m.messages.Current()
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Variant == models.VariantTrade && msgs[i].Trade != nil && !msgs[i].Trade.Completed {
				m.cancelled[tradeKey(msgs[i], i)] = true
				break
			}
		}
		m.updateViewport()
		return m, nil, true

	case "c":
		if err := clipboard.WriteAll(trade.Address); err != nil {
			m.err = fmt.Errorf("failed to copy address: %w", err)
		}
		return m, nil, true
	}
	return m, nil, false
}

// tradeOutcomeMessage wraps a confirm outcome into the new stream message
// appended after a confirmed trade.
func tradeOutcomeMessage(conversationID string, trade models.Trade, result TradeResult) models.Message {
	outcome := trade
	outcome.Completed = true
	outcome.Success = result.Success
	outcome.Hash = result.Hash

	msg := models.NewTextMessage(conversationID, result.Message)
	msg.Role = models.RoleAssistant
	msg.Variant = models.VariantTrade
	msg.Trade = &outcome
	return msg
}
