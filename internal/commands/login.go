package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chattatrader/chattacli/internal/auth"
	"github.com/chattatrader/chattacli/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your ChattaTrader account",
	Long: `Sign in with your email and password. The password is read from the
terminal without echo.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	user, err := promptLogin(cfg.APIBaseURL)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
	return nil
}

// promptLogin asks for credentials and authenticates against the API.
func promptLogin(baseURL string) (*models.User, error) {
	email, err := promptLine("Email: ")
	if err != nil {
		return nil, err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return nil, err
	}

	client, err := auth.NewClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	sp := newSpinner("Signing in...")
	user, err := client.Login(email, password)
	sp.Stop()
	return user, err
}

// promptLine reads a single trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a line without echoing it. Falls back to a plain
// prompt when stdin is not a terminal (tests, pipes).
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLineRaw()
	}
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func promptLineRaw() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
