package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/NereaCassian/C-3PO/internal/adapters/langnames"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>...",
	Short: "Translate text through the background, like the popup does",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().String("from", "", "source language code or auto (default: stored default)")
	translateCmd.Flags().String("to", "", "target language code (default: stored default)")
	translateCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if from == "" || to == "" {
		p, err := a.Settings.GetPreferences()
		if err != nil {
			return err
		}
		if from == "" {
			from = p.DefaultSourceLang
		}
		if to == "" {
			to = p.DefaultTargetLang
		}
	}

	res, err := a.Translate.Translate(strings.Join(args, " "), from, to)
	if err != nil {
		return err
	}
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !res.Success {
		pterm.Error.Println(res.Error)
		return fmt.Errorf("translation failed")
	}
	pterm.Info.Printf("%s → %s\n", langnames.Name(from), langnames.Name(to))
	pterm.Println(res.TranslatedText)
	return nil
}
