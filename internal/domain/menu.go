package domain

// Built-in context menu ids.
const (
	MenuTranslateSelection = "translate-selection"
	MenuSpanishToEnglish   = "translate-es-en"
)

// MenuContextSelection shows an item only when text is selected.
const MenuContextSelection = "selection"

type MenuItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Contexts []string `json:"contexts"`
}

// MenuClick is what the browser reports when a menu item is chosen.
type MenuClick struct {
	MenuItemID    string `json:"menuItemId"`
	SelectionText string `json:"selectionText"`
	TabID         int    `json:"tabId"`
	// SelectionID is the content agent's snapshot of the selection, when known.
	SelectionID string `json:"selectionId,omitempty"`
}
