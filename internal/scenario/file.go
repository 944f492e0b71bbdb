package scenario

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
)

// LoadFile читает сценарий из YAML файла и валидирует его.
//
//	name: boxing-lite
//	vars: {ali_id: "1"}
//	steps:
//	  - name: health
//	    method: GET
//	    path: /health
//
// Неизвестные поля считаются ошибкой.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // путь задаёт оператор
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrScenarioInvalid,
			fmt.Sprintf("не удалось прочитать файл сценария %s", path), err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrScenarioInvalid,
			fmt.Sprintf("не удалось разобрать файл сценария %s", path), err)
	}

	for i := range s.Steps {
		s.Steps[i].Method = strings.ToUpper(s.Steps[i].Method)
	}

	if err := s.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrScenarioInvalid,
			fmt.Sprintf("файл сценария %s невалиден", path), err)
	}
	return &s, nil
}
