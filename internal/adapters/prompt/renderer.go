package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/NereaCassian/C-3PO/internal/ports"
)

// TypeTranslate is the prompt sent for a selection translation.
const TypeTranslate = "translate"

type Renderer struct {
	templates map[string]*template.Template
}

// New parses the builtin templates; overrides replace them by type.
func New(overrides map[string]string) (*Renderer, error) {
	r := &Renderer{templates: map[string]*template.Template{}}
	bodies := map[string]string{TypeTranslate: builtinTranslate}
	for k, v := range overrides {
		if v != "" {
			bodies[k] = v
		}
	}
	for typ, body := range bodies {
		tpl, err := template.New(typ).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse %s prompt: %w", typ, err)
		}
		r.templates[typ] = tpl
	}
	return r, nil
}

// MustNew is New with no overrides; the builtins always parse.
func MustNew() *Renderer {
	r, err := New(nil)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(typ string, data ports.PromptData) (string, error) {
	tpl, ok := r.templates[typ]
	if !ok {
		return "", fmt.Errorf("unknown prompt type %q", typ)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const builtinTranslate = "Translate the following text from {{.SrcLang}} to {{.TgtLang}}. " +
	"Only return the translated text, without any explanations, quotes or additional text.\n\n" +
	"Text to translate:\n{{.Text}}"
