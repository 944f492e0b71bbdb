// Package scenario описывает смоук-сценарии: упорядоченные HTTP шаги,
// реестр встроенных сценариев и загрузку пользовательских из YAML.
package scenario

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Step - один HTTP вызов сценария.
type Step struct {
	// Name - короткое имя шага для логов, метрик и отчёта ("create-boxer-ali").
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Method string `yaml:"method" json:"method"`

	// Path относительно базового URL, может содержать {var}: "/get-boxer-by-id/{ali_id}".
	Path string `yaml:"path" json:"path"`

	Query map[string]string `yaml:"query,omitempty" json:"query,omitempty"`

	// Body сериализуется в JSON как есть.
	Body any `yaml:"body,omitempty" json:"body,omitempty"`

	// Capture: имя переменной → ключ верхнего уровня JSON ответа.
	// Захваченное значение доступно следующим шагам через {var}.
	Capture map[string]string `yaml:"capture,omitempty" json:"capture,omitempty"`
}

// Scenario - именованная последовательность шагов.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Vars - значения переменных по умолчанию. Работают, даже если API
	// не возвращает id в ответе и захват не сработал.
	Vars map[string]string `yaml:"vars,omitempty"`

	Steps []Step `yaml:"steps"`
}

// QueryValues возвращает Query шага как url.Values.
func (s Step) QueryValues() url.Values {
	if len(s.Query) == 0 {
		return nil
	}
	v := make(url.Values, len(s.Query))
	for k, val := range s.Query {
		v.Set(k, val)
	}
	return v
}

// CaptureNames возвращает отсортированные имена переменных, которые захватывает шаг.
func (s Step) CaptureNames() []string {
	names := make([]string, 0, len(s.Capture))
	for name := range s.Capture {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	varPattern  = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

	allowedMethods = map[string]bool{
		http.MethodGet:    true,
		http.MethodPost:   true,
		http.MethodPut:    true,
		http.MethodPatch:  true,
		http.MethodDelete: true,
	}
)

// ErrUnresolvedVar возвращается ResolvePath, если переменной нет ни в Vars, ни в захватах.
var ErrUnresolvedVar = errors.New("переменная пути не определена")

// ResolvePath подставляет переменные в шаблон пути. Значения экранируются url.PathEscape.
func ResolvePath(path string, vars map[string]string) (string, error) {
	var missing []string
	resolved := varPattern.ReplaceAllStringFunc(path, func(m string) string {
		name := m[1 : len(m)-1]
		val, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(val)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedVar, strings.Join(missing, ", "))
	}
	return resolved, nil
}

// PathVars возвращает имена переменных, используемых в шаблоне пути.
func PathVars(path string) []string {
	matches := varPattern.FindAllStringSubmatch(path, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Validate проверяет сценарий: kebab-case имя, хотя бы один шаг,
// у каждого шага имя, известный метод и путь с ведущим '/'.
// Переменные пути должны быть определены в Vars или захвачены предыдущим шагом.
func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("сценарий не задан")
	}
	if !namePattern.MatchString(s.Name) {
		return fmt.Errorf("имя сценария %q должно быть в kebab-case", s.Name)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("сценарий %q не содержит шагов", s.Name)
	}

	known := make(map[string]bool, len(s.Vars))
	for k := range s.Vars {
		known[k] = true
	}

	for i, step := range s.Steps {
		pos := fmt.Sprintf("шаг %d", i+1)
		if step.Name == "" {
			return fmt.Errorf("%s: не указано имя", pos)
		}
		pos += " (" + step.Name + ")"
		if !allowedMethods[strings.ToUpper(step.Method)] {
			return fmt.Errorf("%s: неподдерживаемый метод %q", pos, step.Method)
		}
		if !strings.HasPrefix(step.Path, "/") {
			return fmt.Errorf("%s: путь %q должен начинаться с '/'", pos, step.Path)
		}
		for _, v := range PathVars(step.Path) {
			if !known[v] {
				return fmt.Errorf("%s: переменная {%s} не определена", pos, v)
			}
		}
		for name, key := range step.Capture {
			if key == "" {
				return fmt.Errorf("%s: пустой ключ захвата для %q", pos, name)
			}
			known[name] = true
		}
	}
	return nil
}
