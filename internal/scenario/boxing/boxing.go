// Package boxing содержит встроенный сценарий проверки boxing API:
// CRUD боксёров, ринг, бой и leaderboard.
package boxing

import (
	"net/http"
	"strings"

	"github.com/Kargones/boxing-smoke/internal/scenario"
)

// Name - имя сценария в реестре.
const Name = "boxing"

// DeprecatedName - старое имя из первых версий скрипта.
const DeprecatedName = "smoketest"

type boxer struct {
	name   string
	weight int
	height int
	reach  float64
	age    int
}

var roster = []struct {
	boxer
	idVar string
}{
	{boxer{"Ali", 210, 75, 78.0, 32}, "ali_id"},
	{boxer{"Tyson", 220, 70, 71.0, 28}, "tyson_id"},
	{boxer{"Frazier", 205, 72, 73.5, 30}, "frazier_id"},
}

func createStep(b boxer, idVar string) scenario.Step {
	return scenario.Step{
		Name:        "create-boxer-" + strings.ToLower(b.name),
		Description: "Создание боксёра " + b.name,
		Method:      http.MethodPost,
		Path:        "/create-boxer",
		Body: map[string]any{
			"name":   b.name,
			"weight": b.weight,
			"height": b.height,
			"reach":  b.reach,
			"age":    b.age,
		},
		Capture: map[string]string{idVar: "id"},
	}
}

func enterRingStep(name string) scenario.Step {
	return scenario.Step{
		Name:        "enter-ring-" + strings.ToLower(name),
		Description: name + " выходит на ринг",
		Method:      http.MethodPost,
		Path:        "/enter-ring",
		Body:        map[string]any{"name": name},
	}
}

// New возвращает сценарий boxing.
// Id по умолчанию соответствуют чистой БД: 1, 2, 3 в порядке создания.
func New() *scenario.Scenario {
	steps := []scenario.Step{
		{Name: "health", Description: "Проверка доступности сервиса", Method: http.MethodGet, Path: "/health"},
		{Name: "db-check", Description: "Проверка подключения к БД", Method: http.MethodGet, Path: "/db-check"},
	}
	for _, r := range roster {
		steps = append(steps, createStep(r.boxer, r.idVar))
	}
	steps = append(steps,
		scenario.Step{Name: "delete-boxer", Description: "Удаление Frazier", Method: http.MethodDelete, Path: "/delete-boxer/{frazier_id}"},
		scenario.Step{Name: "get-boxer-by-id", Description: "Получение Ali по id", Method: http.MethodGet, Path: "/get-boxer-by-id/{ali_id}"},
		scenario.Step{Name: "get-boxer-by-name", Description: "Получение Tyson по имени", Method: http.MethodGet, Path: "/get-boxer-by-name/Tyson"},
		enterRingStep("Ali"),
		enterRingStep("Tyson"),
		scenario.Step{Name: "get-boxers", Description: "Боксёры на ринге", Method: http.MethodGet, Path: "/get-boxers"},
		scenario.Step{Name: "fight", Description: "Бой", Method: http.MethodGet, Path: "/fight"},
		scenario.Step{Name: "clear-boxers", Description: "Очистка ринга", Method: http.MethodPost, Path: "/clear-boxers"},
		scenario.Step{
			Name: "leaderboard-wins", Description: "Leaderboard по победам",
			Method: http.MethodGet, Path: "/leaderboard", Query: map[string]string{"sort": "wins"},
		},
		scenario.Step{
			Name: "leaderboard-win-pct", Description: "Leaderboard по проценту побед",
			Method: http.MethodGet, Path: "/leaderboard", Query: map[string]string{"sort": "win_pct"},
		},
	)

	return &scenario.Scenario{
		Name:        Name,
		Description: "Боксёры, ринг, бой и leaderboard",
		Vars: map[string]string{
			"ali_id":     "1",
			"tyson_id":   "2",
			"frazier_id": "3",
		},
		Steps: steps,
	}
}

// Register регистрирует сценарий вместе с deprecated алиасом.
func Register() {
	scenario.RegisterWithAlias(New(), DeprecatedName)
}
