package translator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/adapters/langnames"
	"github.com/NereaCassian/C-3PO/internal/adapters/prompt"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

const (
	NotInitializedMessage = "Translation client not initialized. Please configure your API key."
	NoTextMessage         = "no text to translate"

	MaxTokens   = 1000
	Temperature = 0.3
)

var ErrBuilderMissing = errors.New("translator: client builder missing")

type Deps struct {
	Prompt ports.PromptRenderer
	// Build returns a chat client bound to one provider configuration.
	Build  func(domain.ProviderConfig) (ports.ChatClient, error)
	Logger *slog.Logger
}

// snapshot is never mutated after construction; Reload swaps it whole.
type snapshot struct {
	cfg    domain.ProviderConfig
	client ports.ChatClient
}

type Service struct {
	d    Deps
	mu   sync.RWMutex
	snap snapshot
}

func New(d Deps, cfg domain.ProviderConfig) (*Service, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Prompt == nil {
		d.Prompt = prompt.MustNew()
	}
	s := &Service{d: d}
	if err := s.Reload(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the client for cfg. A config without an API key leaves
// the service uninitialized.
func (s *Service) Reload(cfg domain.ProviderConfig) error {
	next := snapshot{cfg: cfg}
	if cfg.APIKey != "" {
		if s.d.Build == nil {
			return ErrBuilderMissing
		}
		client, err := s.d.Build(cfg)
		if err != nil {
			return err
		}
		next.client = client
	}
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	s.d.Logger.Debug("translator reloaded", "endpoint", cfg.Endpoint, "model", cfg.Model, "ready", next.client != nil)
	return nil
}

// Ready reports whether a client is currently bound.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.client != nil
}

func (s *Service) current() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Translate never returns an error; failures are reported in the result.
func (s *Service) Translate(ctx context.Context, req domain.TranslationRequest) domain.TranslationResult {
	snap := s.current()
	if snap.client == nil {
		return domain.Failed(NotInitializedMessage)
	}
	if req.Text == "" {
		return domain.Failed(NoTextMessage)
	}

	content, err := s.d.Prompt.Render(prompt.TypeTranslate, ports.PromptData{
		SrcLang: langnames.PromptName(req.SourceLang),
		TgtLang: langnames.PromptName(req.TargetLang),
		Text:    req.Text,
	})
	if err != nil {
		return domain.Failed(err.Error())
	}

	out, err := snap.client.Complete(ctx, ports.ChatRequest{
		Model:       snap.cfg.Model,
		Prompt:      content,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		s.d.Logger.Warn("translation failed", "model", snap.cfg.Model, "error", err)
		return domain.Failed(err.Error())
	}
	return domain.Translated(strings.TrimSpace(out))
}

// TestConnection runs a tiny en→es translation against the bound provider.
func (s *Service) TestConnection(ctx context.Context) domain.TranslationResult {
	return s.Translate(ctx, domain.TranslationRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
}
