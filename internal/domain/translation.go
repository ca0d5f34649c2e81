package domain

// AutoDetect as a source language lets the model detect it.
const AutoDetect = "auto"

type TranslationRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// TranslationResult is either a translation or a human-readable error.
type TranslationResult struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translatedText,omitempty"`
	Error          string `json:"error,omitempty"`
}

func Translated(text string) TranslationResult {
	return TranslationResult{Success: true, TranslatedText: text}
}

func Failed(msg string) TranslationResult {
	return TranslationResult{Success: false, Error: msg}
}
