package ports

type PromptData struct {
	SrcLang string
	TgtLang string
	Text    string
}

type PromptRenderer interface {
	Render(typ string, data PromptData) (string, error)
}
