// Package localization holds the user-facing message templates for the
// moderation bot and notification payloads, with optional per-language
// overrides loaded from a JSON file.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// defaults are the built-in English templates. An overrides file may add
// languages or replace individual keys without having to ship every key.
var defaults = map[string]string{
	"bot.new_listing":     "New listing pending review:\n%s - %s (%s)\nUse /approve %s or /reject %s <reason>",
	"bot.new_report":      "New %s report against user %s: %s",
	"bot.pending_header":  "Pending listings:",
	"bot.pending_empty":   "No listings waiting for review.",
	"bot.approved":        "Billboard %s approved.",
	"bot.rejected":        "Billboard %s rejected.",
	"bot.not_found":       "Billboard %s not found.",
	"bot.usage_approve":   "Usage: /approve <billboard_id>",
	"bot.usage_reject":    "Usage: /reject <billboard_id> <reason>",
	"bot.unknown_command": "Unknown command. Try /pending, /approve or /reject.",
	"notify.approved":     "Your billboard %q is now live.",
	"notify.rejected":     "Your billboard %q was rejected: %s",
	"notify.new_message":  "New message about %q.",
}

// Localizer resolves message templates by language and key, falling back
// to the built-in English defaults.
type Localizer struct {
	mu        sync.RWMutex
	overrides map[string]map[string]string // lang -> key -> template
}

// NewLocalizer returns a Localizer using only the built-in defaults.
func NewLocalizer() *Localizer {
	return &Localizer{overrides: make(map[string]map[string]string)}
}

// LoadOverrides merges a JSON file of shape {"uk": {"bot.approved": "..."}}
// into the localizer. Later loads win over earlier ones per key.
func (l *Localizer) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read localization file: %w", err)
	}

	var parsed map[string]map[string]string
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse localization file %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for lang, msgs := range parsed {
		if l.overrides[lang] == nil {
			l.overrides[lang] = make(map[string]string)
		}
		for key, tmpl := range msgs {
			l.overrides[lang][key] = tmpl
		}
	}
	return nil
}

// T returns the template for key in the given language, formatted with
// args. Resolution order: language override, English override, built-in
// default, and finally the key itself.
func (l *Localizer) T(lang, key string, args ...any) string {
	l.mu.RLock()
	tmpl, ok := l.overrides[lang][key]
	if !ok {
		tmpl, ok = l.overrides["en"][key]
	}
	l.mu.RUnlock()

	if !ok {
		tmpl, ok = defaults[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
