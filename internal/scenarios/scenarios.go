// Package scenarios регистрирует встроенные сценарии.
package scenarios

import (
	"sync"

	"github.com/Kargones/boxing-smoke/internal/scenario/boxing"
	"github.com/Kargones/boxing-smoke/internal/scenario/playlist"
)

var once sync.Once

// RegisterAll регистрирует все встроенные сценарии. Повторные вызовы ничего не делают.
func RegisterAll() {
	once.Do(func() {
		boxing.Register()
		playlist.Register()
	})
}
