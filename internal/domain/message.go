package domain

// Action tags a cross-context message.
type Action string

const (
	ActionHandleTranslation  Action = "handleTranslation"
	ActionShowError          Action = "showError"
	ActionUpdateContextMenus Action = "updateContextMenus"
	ActionTranslate          Action = "translate"
)

// Message is one of the typed variants below.
type Message interface {
	Action() Action
}

// HandleTranslation delivers a finished translation to a page.
type HandleTranslation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLang     string `json:"sourceLang"`
	TargetLang     string `json:"targetLang"`
	SelectionID    string `json:"selectionId,omitempty"`
}

type ShowError struct {
	Error string `json:"error"`
}

type UpdateContextMenus struct{}

type Translate struct {
	Data TranslationRequest `json:"data"`
}

func (HandleTranslation) Action() Action  { return ActionHandleTranslation }
func (ShowError) Action() Action          { return ActionShowError }
func (UpdateContextMenus) Action() Action { return ActionUpdateContextMenus }
func (Translate) Action() Action          { return ActionTranslate }

// Ack is the response to requests that carry no data back.
type Ack struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
