// Package featureflags evaluates runtime toggles configured through FEATURE_FLAGS.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Known flags.
const (
	// BasicAuth lets protected routes accept HTTP Basic credentials besides bearer tokens.
	BasicAuth = "basic_auth"
	// SeedTemas loads the default temas fixture during bootstrap.
	SeedTemas = "seed_temas"
)

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "basic_auth=on,seed_temas=off,new_search=25%"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
// Malformed pairs are skipped; the last value of a repeated key wins.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled returns whether a flag is enabled for a given usuario id.
// Values on/true/1 and off/false/0 apply to everyone; N% enables a
// deterministic share of usuarios and never matches id 0.
func (m *Manager) Enabled(name string, usuarioID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pct, ok := percentage(value)
	if !ok {
		return false
	}
	switch {
	case pct <= 0:
		return false
	case pct >= 100:
		return true
	case usuarioID == 0:
		return false
	}
	return rolloutBucket(name, usuarioID) < pct
}

// EnabledGlobally evaluates a flag without a usuario, for process-wide toggles.
func (m *Manager) EnabledGlobally(name string) bool {
	return m.Enabled(name, 0)
}

// Names returns configured flag names in sorted order.
func (m *Manager) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.flags))
	for k := range m.flags {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns evaluated flag status for one usuario.
func (m *Manager) Snapshot(usuarioID uint) map[string]bool {
	out := make(map[string]bool, len(m.Names()))
	for _, name := range m.Names() {
		out[name] = m.Enabled(name, usuarioID)
	}
	return out
}

func percentage(value string) (int, bool) {
	raw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return 0, false
	}
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return pct, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, usuarioID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), usuarioID)))
	return int(h.Sum32() % 100)
}
