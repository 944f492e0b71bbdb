package scenario

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

type entry struct {
	scenario *Scenario
	// aliasOf непустой у deprecated алиаса и содержит основное имя.
	aliasOf string
}

var (
	registry = make(map[string]entry)
	mu       sync.RWMutex
)

// Register регистрирует сценарий в глобальном реестре.
// Паникует при nil, пустом или не kebab-case имени, пустом списке шагов и дубликате.
func Register(s *Scenario) {
	if s == nil {
		panic("scenario: nil scenario")
	}
	if s.Name == "" {
		panic("scenario: empty scenario name")
	}
	if !namePattern.MatchString(s.Name) {
		panic("scenario: invalid scenario name format (must be kebab-case): " + s.Name)
	}
	if len(s.Steps) == 0 {
		panic("scenario: scenario has no steps: " + s.Name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[s.Name]; exists {
		panic("scenario: duplicate scenario registration for " + s.Name)
	}
	registry[s.Name] = entry{scenario: s}
}

// RegisterWithAlias регистрирует сценарий и, если deprecated не пуст,
// устаревшее имя, которое разрешается в этот же сценарий.
func RegisterWithAlias(s *Scenario, deprecated string) {
	Register(s)
	if deprecated == "" {
		return
	}
	if deprecated == s.Name {
		panic("scenario: deprecated name cannot be same as scenario name: " + deprecated)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[deprecated]; exists {
		panic("scenario: duplicate scenario registration for " + deprecated)
	}
	registry[deprecated] = entry{scenario: s, aliasOf: s.Name}
}

// Get возвращает сценарий по имени или алиасу без предупреждения.
func Get(name string) (*Scenario, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[name]
	return e.scenario, ok
}

// Resolve возвращает сценарий по имени. Для deprecated алиаса пишет в warn
// (обычно stderr) предупреждение с новым именем.
func Resolve(name string, warn io.Writer) (*Scenario, bool) {
	mu.RLock()
	e, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.aliasOf != "" && warn != nil {
		_, _ = fmt.Fprintf(warn, "WARNING: scenario '%s' is deprecated, use '%s' instead\n", name, e.aliasOf) //nolint:errcheck // best-effort warning
	}
	return e.scenario, true
}

// All возвращает копию реестра без алиасов.
func All() map[string]*Scenario {
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]*Scenario, len(registry))
	for name, e := range registry {
		if e.aliasOf == "" {
			out[name] = e.scenario
		}
	}
	return out
}

// Names возвращает отсортированные основные имена сценариев.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name, e := range registry {
		if e.aliasOf == "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Info описывает сценарий для команды list.
type Info struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Steps           int    `json:"steps"`
	DeprecatedAlias string `json:"deprecated_alias,omitempty"`
}

// ListAllWithAliases возвращает сценарии, отсортированные по имени,
// с deprecated алиасами в поле DeprecatedAlias.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliases := make(map[string]string)
	for name, e := range registry {
		if e.aliasOf != "" {
			aliases[e.aliasOf] = name
		}
	}

	out := make([]Info, 0, len(registry)-len(aliases))
	for name, e := range registry {
		if e.aliasOf != "" {
			continue
		}
		out = append(out, Info{
			Name:            name,
			Description:     e.scenario.Description,
			Steps:           len(e.scenario.Steps),
			DeprecatedAlias: aliases[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset очищает реестр. Только для тестов других пакетов.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]entry)
}
