package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/adapters/crypto/blob"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

// Listener is told about the new configuration after a write.
type Listener func(ctx context.Context, cfg domain.ProviderConfig)

// Store persists the provider configuration as a sealed blob.
type Store struct {
	kv        ports.KVStore
	sealer    ports.Sealer
	logger    *slog.Logger
	mu        sync.Mutex
	cached    *domain.ProviderConfig
	listeners []Listener

	// lastWritten and selfDelete let Watch recognise this store's own writes.
	lastWritten string
	selfDelete  bool
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(kv ports.KVStore, sealer ports.Sealer, opts ...Option) *Store {
	s := &Store{kv: kv, sealer: sealer, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers fn to run after every successful write or reset.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get never fails: a missing or unreadable blob yields the default provider.
func (s *Store) Get(ctx context.Context) domain.ProviderConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx)
}

func (s *Store) getLocked(ctx context.Context) domain.ProviderConfig {
	if s.cached != nil {
		return *s.cached
	}
	cfg := s.read(ctx)
	s.cached = &cfg
	return cfg
}

func (s *Store) read(ctx context.Context) domain.ProviderConfig {
	raw, ok, err := s.kv.Get(ctx, domain.KeyProviderConfig)
	if err != nil {
		s.logger.Warn("read provider config", "error", err)
		return domain.DefaultProviderConfig()
	}
	if !ok || raw == "" {
		return domain.DefaultProviderConfig()
	}
	if plain, err := s.sealer.Open(raw); err == nil {
		if cfg, err := decode(plain); err == nil {
			return cfg
		}
	} else {
		s.logger.Debug("config blob did not unseal, trying legacy encoding", "error", err)
	}
	if plain, err := blob.DecodeLegacy(raw); err == nil {
		if cfg, err := decode(plain); err == nil {
			return cfg
		}
	}
	s.logger.Warn("stored provider config unreadable, using defaults")
	return domain.DefaultProviderConfig()
}

// Set merges patch onto the current config and replaces the stored blob.
func (s *Store) Set(ctx context.Context, patch domain.ProviderPatch) error {
	s.mu.Lock()
	cfg := patch.Apply(s.getLocked(ctx))
	s.mu.Unlock()

	if err := s.write(ctx, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = &cfg
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, cfg)
	}
	return nil
}

// Reset removes the stored config; listeners see the defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.selfDelete = true
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, domain.KeyProviderConfig); err != nil {
		return fmt.Errorf("delete provider config: %w", err)
	}

	cfg := domain.DefaultProviderConfig()
	s.mu.Lock()
	s.selfDelete = false
	s.cached = &cfg
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, cfg)
	}
	return nil
}

func (s *Store) IsConfigured(ctx context.Context) bool {
	return s.Get(ctx).Usable()
}

// Invalidate drops the cached config so the next Get reads storage again.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

// Watch keeps the cache in step with writes made by other contexts and
// tells listeners about them. The store's own writes are skipped.
func (s *Store) Watch(w ports.WatchableStore) (unsubscribe func()) {
	return w.Subscribe(func(ctx context.Context, changes []ports.StorageChange) {
		for _, ch := range changes {
			if ch.Key != domain.KeyProviderConfig {
				continue
			}
			s.mu.Lock()
			own := (ch.NewValue != nil && *ch.NewValue == s.lastWritten) || (ch.NewValue == nil && s.selfDelete)
			if own {
				s.mu.Unlock()
				continue
			}
			s.cached = nil
			cfg := s.getLocked(ctx)
			listeners := append([]Listener(nil), s.listeners...)
			s.mu.Unlock()

			s.logger.Debug("provider config changed in another context")
			for _, fn := range listeners {
				fn(ctx, cfg)
			}
		}
	})
}

func (s *Store) write(ctx context.Context, cfg domain.ProviderConfig) error {
	plain, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return fmt.Errorf("seal provider config: %w", err)
	}
	s.mu.Lock()
	s.lastWritten = sealed
	s.mu.Unlock()
	if err := s.kv.Set(ctx, domain.KeyProviderConfig, sealed); err != nil {
		return fmt.Errorf("write provider config: %w", err)
	}
	return nil
}

func decode(plain []byte) (domain.ProviderConfig, error) {
	var cfg domain.ProviderConfig
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return domain.ProviderConfig{}, err
	}
	return cfg, nil
}

// Mask hides all but the last four characters of an API key.
func Mask(key string) string {
	if len(key) <= 4 {
		return key
	}
	return "****" + key[len(key)-4:]
}
