// Package langnames turns language codes into English display names.
package langnames

import (
	"strings"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// AutoName is shown for the auto-detect source language.
const AutoName = "Auto-detect"

// Name returns the English name for code, or code itself when unknown.
func Name(code string) string {
	if code == domain.AutoDetect {
		return AutoName
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if n := display.English.Tags().Name(tag); n != "" {
		return n
	}
	return code
}

// PromptName is the phrase used inside a translation prompt.
func PromptName(code string) string {
	if code == domain.AutoDetect || strings.TrimSpace(code) == "" {
		return "the detected language"
	}
	return Name(code)
}

// Valid reports whether code is "auto" or a well-formed BCP 47 tag.
func Valid(code string) bool {
	if code == domain.AutoDetect {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}
