package main

import (
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var menusCmd = &cobra.Command{
	Use:   "menus",
	Short: "Manage the right-click translate shortcuts",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var menusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the context menu as the browser would show it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Settings.GetPreferences()
		if err != nil {
			return err
		}
		rows := pterm.TableData{{"ID", "Title"}}
		for _, it := range a.Menus.Items() {
			rows = append(rows, []string{it.ID, it.Title})
		}
		printTable(rows)

		var hidden []string
		for _, e := range p.CustomMenuItems {
			if !e.Enabled {
				hidden = append(hidden, e.ID)
			}
		}
		if len(hidden) > 0 {
			pterm.Info.Printf("Disabled custom items: %v\n", hidden)
		}
		return nil
	},
}

var menusAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom translate shortcut",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString("id")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		disabled, _ := cmd.Flags().GetBool("disabled")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.Settings.AddCustomMenuItem(domain.ContextMenuEntry{
			ID:         id,
			SourceLang: from,
			TargetLang: to,
			Enabled:    !disabled,
		})
		if err != nil {
			return err
		}
		pterm.Success.Printf("Added %s (%s → %s)\n", e.ID, e.SourceLang, e.TargetLang)
		return nil
	},
}

var menusRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom translate shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Settings.RemoveCustomMenuItem(args[0]); err != nil {
			return err
		}
		pterm.Success.Printf("Removed %s\n", args[0])
		return nil
	},
}

var menusSpanishCmd = &cobra.Command{
	Use:       "spanish <on|off>",
	Short:     "Toggle the Spanish → English shortcut",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Settings.SetSpanishShortcut(on); err != nil {
			return err
		}
		pterm.Success.Printf("Spanish → English shortcut %s\n", onOff(on))
		return nil
	},
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func init() {
	menusAddCmd.Flags().String("id", "", "item id (generated when empty)")
	menusAddCmd.Flags().String("from", "auto", "source language code or auto")
	menusAddCmd.Flags().String("to", "", "target language code")
	menusAddCmd.Flags().Bool("disabled", false, "store the item without showing it")
	_ = menusAddCmd.MarkFlagRequired("to")

	menusCmd.AddCommand(menusListCmd)
	menusCmd.AddCommand(menusAddCmd)
	menusCmd.AddCommand(menusRemoveCmd)
	menusCmd.AddCommand(menusSpanishCmd)
}
