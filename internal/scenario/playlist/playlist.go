// Package playlist содержит сценарий для song/playlist эндпоинтов,
// оставшихся в том же API от предыдущего задания.
package playlist

import (
	"net/http"

	"github.com/Kargones/boxing-smoke/internal/scenario"
)

// Name - имя сценария в реестре.
const Name = "playlist"

func song(artist, title, genre string, year, duration int) map[string]any {
	return map[string]any{
		"artist":   artist,
		"title":    title,
		"year":     year,
		"genre":    genre,
		"duration": duration,
	}
}

// New возвращает сценарий playlist.
func New() *scenario.Scenario {
	return &scenario.Scenario{
		Name:        Name,
		Description: "Каталог песен и плейлист",
		Vars:        map[string]string{"song_id": "1"},
		Steps: []scenario.Step{
			{Name: "health", Method: http.MethodGet, Path: "/health"},
			{
				Name: "create-song-1", Description: "Добавление песни в каталог",
				Method: http.MethodPost, Path: "/create-song",
				Body:    song("The Beatles", "Hey Jude", "Rock", 1968, 180),
				Capture: map[string]string{"song_id": "id"},
			},
			{
				Name: "create-song-2", Description: "Добавление второй песни",
				Method: http.MethodPost, Path: "/create-song",
				Body: song("Queen", "Bohemian Rhapsody", "Rock", 1975, 354),
			},
			{Name: "get-song-by-id", Method: http.MethodGet, Path: "/get-song-from-catalog-by-id/{song_id}"},
			{
				Name: "add-song-to-playlist", Method: http.MethodPost, Path: "/add-song-to-playlist",
				Body: map[string]any{"artist": "The Beatles", "title": "Hey Jude", "year": 1968},
			},
			{Name: "get-playlist", Method: http.MethodGet, Path: "/get-all-songs-from-playlist"},
			{Name: "clear-playlist", Method: http.MethodPost, Path: "/clear-playlist"},
			{Name: "delete-song", Method: http.MethodDelete, Path: "/delete-song/{song_id}"},
		},
	}
}

// Register регистрирует сценарий.
func Register() {
	scenario.Register(New())
}
