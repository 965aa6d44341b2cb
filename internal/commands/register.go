package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chattatrader/chattacli/internal/auth"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a ChattaTrader account",
	Long: `Create a new account. After registering, run "chatta verify" to
confirm your email with the code you receive.`,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	username, err := promptLine("Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	client, err := auth.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	sp := newSpinner("Creating account...")
	user, err := client.Register(username, email, password)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s. Run \"chatta verify\" to confirm your email.\n", user.Email)
	return nil
}
