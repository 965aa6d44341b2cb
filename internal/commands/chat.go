package commands

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chattatrader/chattacli/internal/auth"
	"github.com/chattatrader/chattacli/internal/capture"
	"github.com/chattatrader/chattacli/internal/config"
	"github.com/chattatrader/chattacli/internal/directory"
	"github.com/chattatrader/chattacli/internal/models"
	"github.com/chattatrader/chattacli/internal/render"
	"github.com/chattatrader/chattacli/internal/store"
	"github.com/chattatrader/chattacli/internal/transport"
	"github.com/chattatrader/chattacli/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat view",
	Long: `Open the interactive chat view. Connects to the real-time channel,
loads your most recent conversation and starts the terminal UI.

Keys inside the chat:
  Enter    Send the typed message
  Ctrl+R   Start/stop a voice note
  Ctrl+O   Attach an image by path
  Ctrl+L   Switch conversation
  y/n/c    Confirm/decline/copy a pending trade
  Esc      Quit`,
	RunE: runChat,
}

var (
	offlineFlag bool
	loginFlag   bool
)

func init() {
	chatCmd.Flags().BoolVar(&offlineFlag, "offline", false, "Skip connecting and browse conversations locally")
	chatCmd.Flags().BoolVar(&loginFlag, "login", false, "Sign in before connecting")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	render.SetDefaultStyle(cfg.MarkdownStyle)
	tui.UpdateTheme()

	logger := newLogger(cfg)

	baseDir, err := config.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("failed to prepare config directory: %w", err)
	}

	dir, err := directory.Open(baseDir)
	if err != nil {
		return fmt.Errorf("failed to open conversation directory: %w", err)
	}

	conv, err := mostRecentConversation(dir)
	if err != nil {
		return fmt.Errorf("failed to load conversations: %w", err)
	}

	spillDir := cfg.AttachmentDir
	if spillDir == "" {
		spillDir = filepath.Join(os.TempDir(), "chatta")
	}
	if err := os.MkdirAll(spillDir, 0o700); err != nil {
		return fmt.Errorf("failed to create attachment directory: %w", err)
	}
	messages := store.New(spillDir, logger)
	defer messages.Close()

	session := auth.NewSession()
	if loginFlag {
		user, loginErr := promptLogin(cfg.APIBaseURL)
		if loginErr != nil {
			return loginErr
		}
		session.Login(user)
		fmt.Printf("Signed in as %s\n", user.Username)
	}

	endpoint := cfg.SocketEndpoint
	if token := session.Token(); token != "" {
		endpoint += "?token=" + url.QueryEscape(token)
	}

	var adapter tui.TransportInterface
	if !offlineFlag {
		sp := newSpinner("Connecting to ChattaTrader...")
		conn, dialErr := transport.Dial(endpoint, transport.WithLogger(logger))
		sp.Stop()
		if dialErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not connect (%v), starting offline\n", dialErr)
		} else {
			adapter = conn
			defer conn.Close()
		}
	}

	recorder := capture.NewRecorder(nil)
	defer recorder.Abort()

	confirm := defaultConfirm
	return tui.RunChat(adapter, dir, messages, recorder, confirm, conv)
}

// mostRecentConversation picks the newest conversation and marks it active.
func mostRecentConversation(dir *directory.Directory) (*models.Conversation, error) {
	list, err := dir.List()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no conversations available")
	}
	return dir.Select(list[0].ID)
}

// defaultConfirm acknowledges a trade locally. The server reports the
// real execution outcome on the stream, so this only simulates the
// round trip for trades confirmed while the channel is quiet.
func defaultConfirm(trade models.Trade) (tui.TradeResult, error) {
	return tui.TradeResult{
		Success: true,
		Hash:    "0x" + uuid.NewString()[:8],
		Message: "trade submitted",
	}, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logPath := filepath.Join(os.TempDir(), "chatta.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger()
}
