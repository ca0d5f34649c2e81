package domain

// Storage keys shared by every context.
const (
	KeyProviderConfig         = "aiConfig"
	KeyEnableSpanishToEnglish = "enableSpanishToEnglish"
	KeyDarkMode               = "darkMode"
	KeyCustomMenuItems        = "customMenuItems"
	KeyDefaultSourceLang      = "defaultSourceLang"
	KeyDefaultTargetLang      = "defaultTargetLang"
)

// ContextMenuEntry is a user-defined translate shortcut.
type ContextMenuEntry struct {
	ID         string `json:"id"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
	Enabled    bool   `json:"enabled"`
}

type Preferences struct {
	EnableSpanishToEnglish bool               `json:"enableSpanishToEnglish"`
	DarkMode               bool               `json:"darkMode"`
	CustomMenuItems        []ContextMenuEntry `json:"customMenuItems"`
	DefaultSourceLang      string             `json:"defaultSourceLang"`
	DefaultTargetLang      string             `json:"defaultTargetLang"`
}

// StoredPreferences mirrors Preferences as read from storage: a nil field
// was never written.
type StoredPreferences struct {
	EnableSpanishToEnglish *bool
	DarkMode               *bool
	CustomMenuItems        []ContextMenuEntry
	DefaultSourceLang      *string
	DefaultTargetLang      *string
}

// DefaultPreferences are used for any key the user has not set.
func DefaultPreferences() Preferences {
	return Preferences{
		EnableSpanishToEnglish: true,
		CustomMenuItems:        []ContextMenuEntry{},
		DefaultSourceLang:      AutoDetect,
		DefaultTargetLang:      "en",
	}
}

// MergeDefaults is the single place defaults are applied to stored values.
func MergeDefaults(s StoredPreferences) Preferences {
	p := DefaultPreferences()
	if s.EnableSpanishToEnglish != nil {
		p.EnableSpanishToEnglish = *s.EnableSpanishToEnglish
	}
	if s.DarkMode != nil {
		p.DarkMode = *s.DarkMode
	}
	if s.CustomMenuItems != nil {
		p.CustomMenuItems = s.CustomMenuItems
	}
	if s.DefaultSourceLang != nil && *s.DefaultSourceLang != "" {
		p.DefaultSourceLang = *s.DefaultSourceLang
	}
	if s.DefaultTargetLang != nil && *s.DefaultTargetLang != "" {
		p.DefaultTargetLang = *s.DefaultTargetLang
	}
	return p
}
