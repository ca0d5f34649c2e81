package main

import (
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change the AI provider configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the provider configuration with the API key masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		v := a.Settings.GetConfig()
		rows := pterm.TableData{{"Property", "Value"}}
		rows = append(rows, []string{"Endpoint", v.Endpoint})
		rows = append(rows, []string{"Model", v.Model})
		rows = append(rows, []string{"API key", v.APIKey})
		rows = append(rows, []string{"Configured", fmt.Sprintf("%t", v.Configured)})
		rows = append(rows, []string{"Sealing", a.SealMode})
		rows = append(rows, []string{"Driver", settings.LLMDriver})
		printTable(rows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update endpoint, model or API key; unset flags keep their value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var patch domain.ProviderPatch
		for flag, dst := range map[string]**string{
			"endpoint": &patch.Endpoint,
			"model":    &patch.Model,
			"api-key":  &patch.APIKey,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		if patch == (domain.ProviderPatch{}) {
			return fmt.Errorf("nothing to set: pass --endpoint, --model or --api-key")
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Settings.SaveConfig(patch)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Saved provider config (%s, key %s)\n", v.Model, v.APIKey)
		if !v.Configured {
			pterm.Warning.Println("Configuration is incomplete: endpoint, model and API key are all required")
		}
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored provider configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Settings.ResetConfig(); err != nil {
			return err
		}
		pterm.Success.Println("Provider configuration reset to defaults")
		return nil
	},
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: `Translate "Hello" to Spanish with the saved provider`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		spinner, _ := pterm.DefaultSpinner.Start("Contacting provider...")
		res := a.Settings.TestConnection()
		if !res.Success {
			spinner.Fail(res.Error)
			return fmt.Errorf("connection test failed")
		}
		spinner.Success(fmt.Sprintf("Provider answered: %s", res.TranslatedText))
		return nil
	},
}

func init() {
	configSetCmd.Flags().String("endpoint", "", "chat-completion endpoint URL")
	configSetCmd.Flags().String("model", "", "model name")
	configSetCmd.Flags().String("api-key", "", "API key")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configTestCmd)
}
