// Package commands provides the CLI commands for the chatta client.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chattatrader/chattacli/internal/config"
	"github.com/chattatrader/chattacli/internal/render"
)

var (
	// Global flags
	endpointFlag string
	apiFlag      string
	verboseFlag  bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatta",
	Short: "Terminal client for the ChattaTrader assistant",
	Long: `chatta is a terminal client for ChattaTrader, the crypto-trading chat
assistant. It connects to the real-time chat channel, renders token info
cards, trade confirmations and search results, and can send voice notes
and images.

Examples:
  chatta login                 Sign in to your account
  chatta chat                  Open the chat view
  chatta verify                Verify your email with an OTP code
  chatta config                Show or change settings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("chatta %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Socket endpoint override")
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "REST API base URL override")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig applies flag overrides on top of the config file.
func loadConfig() config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}
	if endpointFlag != "" {
		cfg.SocketEndpoint = endpointFlag
	}
	if apiFlag != "" {
		cfg.APIBaseURL = apiFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	if !render.SetTUITheme(cfg.TUITheme) {
		cfg.TUITheme = "chatta"
		render.SetTUITheme(cfg.TUITheme)
	}
	return cfg
}
