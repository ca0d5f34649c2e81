package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/NereaCassian/C-3PO/internal/config"
	"github.com/NereaCassian/C-3PO/internal/extension"
	"github.com/NereaCassian/C-3PO/internal/logging"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	settings config.Config
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "c3po",
	Short: "Translate selected text with an OpenAI-compatible model",
	Long: `c3po runs the selection translator outside the browser.

The background, popup and content contexts talk over an in-process
message runtime and share a synced store kept in SQLite.

Example:
  c3po config set --api-key sk-... --model gpt-4o-mini
  c3po translate --to de "Good morning"
  c3po select --text hola --field input --value "hola mundo" --menu translate-es-en`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", ".env", "dotenv file to load before the environment")
	pf.String("db", "", "SQLite database path (overrides C3PO_DB_PATH)")
	pf.String("log-level", "", "debug, info, warn or error (overrides C3PO_LOG_LEVEL)")
	pf.String("driver", "", "chat driver: resty or openai (overrides C3PO_LLM_DRIVER)")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(menusCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(passphraseCmd)
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.LLMDriver = v
	}
	settings = cfg
	logger = logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	return nil
}

// openApp builds the extension and fires its install or startup event.
func openApp(ctx context.Context) (*extension.App, error) {
	a, err := extension.New(ctx, settings, extension.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := a.Start(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func printTable(rows pterm.TableData) {
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
