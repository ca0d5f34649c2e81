package main

import (
	"context"
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/adapters/keyring"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Seal the provider config with a passphrase kept in the OS keyring",
	Long: `Without a passphrase the stored provider config is only obfuscated:
the key that decrypts it is stored next to it. A passphrase kept in the
OS keyring (enable with C3PO_USE_KEYRING=true) derives the key instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var passphraseSetCmd = &cobra.Command{
	Use:   "set [passphrase]",
	Short: "Store a passphrase and re-seal the current config with it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Passphrase != "" {
			return fmt.Errorf("C3PO_CONFIG_PASSPHRASE is set and takes precedence over the keyring; unset it first")
		}
		var pass string
		if len(args) == 1 {
			pass = args[0]
		} else {
			v, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Passphrase")
			if err != nil {
				return err
			}
			pass = v
		}
		ctx := cmd.Context()

		// read under the sealer in use before the keyring changes
		settings.UseKeyring = true
		cfg, err := currentConfig(ctx)
		if err != nil {
			return err
		}
		if err := keyring.SetPassphrase(pass); err != nil {
			return err
		}
		if err := reseal(ctx, cfg); err != nil {
			return err
		}
		pterm.Success.Println("Passphrase stored; set C3PO_USE_KEYRING=true to use it")
		return nil
	},
}

var passphraseClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Re-seal the config with the embedded key and forget the passphrase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := currentConfig(ctx)
		if err != nil {
			return err
		}

		settings.UseKeyring = false
		settings.Passphrase = ""
		if err := reseal(ctx, cfg); err != nil {
			return err
		}
		if err := keyring.ClearPassphrase(); err != nil {
			return err
		}
		pterm.Success.Println("Passphrase removed; the config is obfuscated only")
		return nil
	},
}

// currentConfig reads the full provider config, key included, with the
// sealer the current settings select.
func currentConfig(ctx context.Context) (domain.ProviderConfig, error) {
	a, err := openApp(ctx)
	if err != nil {
		return domain.ProviderConfig{}, err
	}
	defer a.Close()
	return a.BackgroundConfig.Get(ctx), nil
}

// reseal writes cfg whole with the sealer the current settings select.
// Nothing is written when no key was stored.
func reseal(ctx context.Context, cfg domain.ProviderConfig) error {
	if cfg.APIKey == "" {
		return nil
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	patch := domain.ProviderPatch{Endpoint: &cfg.Endpoint, Model: &cfg.Model, APIKey: &cfg.APIKey}
	if err := a.BackgroundConfig.Set(ctx, patch); err != nil {
		return fmt.Errorf("re-seal config: %w", err)
	}
	return nil
}

func init() {
	passphraseCmd.AddCommand(passphraseSetCmd)
	passphraseCmd.AddCommand(passphraseClearCmd)
}
