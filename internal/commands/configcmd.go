package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chattatrader/chattacli/internal/config"
	"github.com/chattatrader/chattacli/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the current configuration, or set a value.

Keys:
  endpoint    Socket endpoint
  api         REST API base URL
  theme       TUI theme (` + strings.Join(render.TUIThemeNames(), ", ") + `)
  style       Markdown style (dark, light, notty)
  attachments Directory for spilled voice notes and images
  verbose     Debug logging (true/false)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	path, _ := config.GetConfigPath()
	fmt.Printf("Config file:  %s\n", path)
	fmt.Printf("endpoint:     %s\n", cfg.SocketEndpoint)
	fmt.Printf("api:          %s\n", cfg.APIBaseURL)
	fmt.Printf("theme:        %s\n", cfg.TUITheme)
	fmt.Printf("style:        %s\n", cfg.MarkdownStyle)
	fmt.Printf("attachments:  %s\n", cfg.AttachmentDir)
	fmt.Printf("verbose:      %t\n", cfg.Verbose)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "endpoint":
		cfg.SocketEndpoint = value
	case "api":
		cfg.APIBaseURL = value
	case "theme":
		if !render.SetTUITheme(value) {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
		cfg.TUITheme = value
	case "style":
		cfg.MarkdownStyle = value
	case "attachments":
		cfg.AttachmentDir = value
	case "verbose":
		b, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return fmt.Errorf("verbose wants true or false, got %q", value)
		}
		cfg.Verbose = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
