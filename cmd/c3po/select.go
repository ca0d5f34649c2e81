package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/NereaCassian/C-3PO/internal/adapters/browser"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/usecase/content"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const selectTabID = 1

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Simulate selecting text on a page and clicking a menu item",
	Long: `Simulate a user selecting text and choosing a context menu item.

Without --field the selection is plain page text and the translation is
copied to the terminal clipboard (OSC 52). With --field the selection
lives in an editable field whose --value is printed after the splice.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.String("text", "", "selected text")
	f.String("field", "", "field kind: input, textarea or contenteditable")
	f.String("value", "", "field value (defaults to the selected text)")
	f.Int("start", -1, "selection start, in characters (default: first match of --text)")
	f.Int("end", -1, "selection end, in characters")
	f.String("menu", domain.MenuTranslateSelection, "menu item id to click")
	_ = selectCmd.MarkFlagRequired("text")
}

func runSelect(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	text, _ := f.GetString("text")
	kind, _ := f.GetString("field")
	value, _ := f.GetString("value")
	start, _ := f.GetInt("start")
	end, _ := f.GetInt("end")
	menu, _ := f.GetString("menu")

	ev := content.PointerUp{Text: text}
	var field *browser.Field
	if kind != "" {
		fk := domain.FieldKind(kind)
		if !fk.Editable() {
			return fmt.Errorf("unknown field kind %q", kind)
		}
		if value == "" {
			value = text
		}
		if start < 0 {
			i := strings.Index(value, text)
			if i < 0 {
				return fmt.Errorf("--text %q not found in --value", text)
			}
			start = utf8.RuneCountInString(value[:i])
		}
		if end < 0 {
			end = start + utf8.RuneCountInString(text)
		}
		field = browser.NewField(fk, value)
		ev.Field, ev.Start, ev.End = field, start, end
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	fallback := &browser.MemoryClipboard{}
	agent := a.OpenTab(selectTabID, content.Deps{
		Clipboard: browser.NewTerminalClipboard(os.Stdout),
		Fallback:  fallback,
		Toaster:   browser.NewTerminalToaster(os.Stdout),
	})
	defer a.CloseTab(selectTabID)

	id, ok := agent.OnPointerUp(ev)
	if !ok {
		return fmt.Errorf("empty selection")
	}
	a.Click(cmd.Context(), domain.MenuClick{
		MenuItemID:    menu,
		SelectionText: text,
		TabID:         selectTabID,
		SelectionID:   id,
	})

	if field != nil {
		rows := pterm.TableData{{"Field", "Value"}}
		rows = append(rows, []string{"Value", field.Value()})
		rows = append(rows, []string{"Cursor", fmt.Sprintf("%d", field.Cursor())})
		printTable(rows)
	}
	if t := fallback.Text(); t != "" {
		pterm.Println(t)
	}
	return nil
}
