package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chattatrader/chattacli/internal/auth"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify your email with a one-time code",
	RunE:  runVerify,
}

var resendFlag bool

func init() {
	verifyCmd.Flags().BoolVar(&resendFlag, "resend", false, "Request a fresh code before verifying")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}

	client, err := auth.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	if resendFlag {
		sp := newSpinner("Requesting code...")
		err = client.RequestCode(email)
		sp.Stop()
		if err != nil {
			return err
		}
		fmt.Println("Code sent. Check your inbox.")
	}

	code, err := promptLine("Code: ")
	if err != nil {
		return err
	}

	sp := newSpinner("Verifying...")
	err = client.VerifyCode(code, email)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Println("Email verified.")
	return nil
}
