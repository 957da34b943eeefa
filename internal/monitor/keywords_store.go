package monitor

import (
	"strings"
	"sync"
)

// KeywordStore holds a user-supplied override for the alert lexicon. When
// disabled (the default), enrichment falls back to AlertKeywords.
type KeywordStore struct {
	mu      sync.RWMutex
	custom  []string
	enabled bool
}

// NewKeywordStore returns a store seeded with the default lexicon and the
// override disabled.
func NewKeywordStore() *KeywordStore {
	custom := make([]string, len(AlertKeywords))
	copy(custom, AlertKeywords)
	return &KeywordStore{custom: custom}
}

// Active returns the keyword list enrichment should use: nil when the
// override is disabled (selecting the defaults), otherwise a copy of the
// custom list.
func (s *KeywordStore) Active() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.enabled {
		return nil
	}
	out := make([]string, len(s.custom))
	copy(out, s.custom)
	return out
}

// State returns the current custom list and whether the override is enabled.
func (s *KeywordStore) State() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.custom))
	copy(out, s.custom)
	return out, s.enabled
}

// Set replaces the custom list and the enabled flag. Keywords are trimmed,
// lower-cased, and deduplicated; empties are dropped. Order is preserved
// because it decides which keyword wins when several match.
func (s *KeywordStore) Set(custom []string, enabled bool) {
	cleaned := make([]string, 0, len(custom))
	seen := make(map[string]struct{}, len(custom))
	for _, keyword := range custom {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		cleaned = append(cleaned, keyword)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom = cleaned
	s.enabled = enabled
}
