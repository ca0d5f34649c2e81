package app

import (
	"context"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

// TranslateAPI is the popup's on-demand translate box. It asks the
// background to translate rather than calling the provider itself.
type TranslateAPI struct {
	background ports.RuntimeMessenger
}

func NewTranslateAPI(background ports.RuntimeMessenger) *TranslateAPI {
	return &TranslateAPI{background: background}
}

func (a *TranslateAPI) Translate(text, sourceLang, targetLang string) (domain.TranslationResult, error) {
	ctx := context.Background()
	body, err := a.background.SendMessage(ctx, domain.Translate{Data: domain.TranslationRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}})
	if err != nil {
		return domain.TranslationResult{}, err
	}
	return messaging.DecodeReply[domain.TranslationResult](body)
}
