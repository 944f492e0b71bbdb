package smoke

import (
	"encoding/json"
	"sort"
	"strconv"
)

// captureValues извлекает значения верхнего уровня JSON ответа для capture шага.
// Возвращает захваченные значения и отсортированный список отсутствующих ключей.
// Тело, не являющееся JSON объектом, даёт все ключи отсутствующими.
func captureValues(body []byte, capture map[string]string) (map[string]string, []string) {
	if len(capture) == 0 {
		return nil, nil
	}

	var top map[string]any
	if err := json.Unmarshal(body, &top); err != nil {
		top = nil
	}

	captured := make(map[string]string, len(capture))
	var missing []string
	for name, key := range capture {
		value, ok := top[key]
		if !ok || value == nil {
			missing = append(missing, name)
			continue
		}
		captured[name] = stringify(value)
	}
	sort.Strings(missing)
	return captured, missing
}

// stringify приводит скалярное JSON значение к строке для подстановки в путь.
// Числа выводятся без экспоненты: 7, а не 7e+00.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
