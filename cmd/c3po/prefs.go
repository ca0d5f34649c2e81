package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		flags := cmd.Flags()
		if flags.Changed("source") || flags.Changed("target") {
			p, err := a.Settings.GetPreferences()
			if err != nil {
				return err
			}
			src, tgt := p.DefaultSourceLang, p.DefaultTargetLang
			if flags.Changed("source") {
				src, _ = flags.GetString("source")
			}
			if flags.Changed("target") {
				tgt, _ = flags.GetString("target")
			}
			if err := a.Settings.SetDefaultLanguages(src, tgt); err != nil {
				return err
			}
		}
		if flags.Changed("dark") {
			dark, _ := flags.GetBool("dark")
			if err := a.Settings.SetDarkMode(dark); err != nil {
				return err
			}
		}

		p, err := a.Settings.GetPreferences()
		if err != nil {
			return err
		}
		rows := pterm.TableData{{"Preference", "Value"}}
		rows = append(rows, []string{"Default source", p.DefaultSourceLang})
		rows = append(rows, []string{"Default target", p.DefaultTargetLang})
		rows = append(rows, []string{"Spanish → English", onOff(p.EnableSpanishToEnglish)})
		rows = append(rows, []string{"Dark mode", onOff(p.DarkMode)})
		printTable(rows)
		return nil
	},
}

func init() {
	prefsCmd.Flags().String("source", "", "default source language (code or auto)")
	prefsCmd.Flags().String("target", "", "default target language")
	prefsCmd.Flags().Bool("dark", false, "dark mode for the popup")
}
