// Package report сохраняет JSON результат прогона в файл для артефактов CI.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

// WriteFile атомарно записывает result в path в JSON формате.
// Читатель файла видит либо прежнее содержимое, либо новое целиком.
func WriteFile(path string, result *output.Result) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось создать директорию отчёта", err)
		}
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(constants.FilePermReadWrite))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось создать временный файл отчёта", err)
	}
	defer func() {
		// после CloseAtomicallyReplace Cleanup ничего не делает
		if cleanupErr := pending.Cleanup(); cleanupErr != nil && err == nil {
			err = fmt.Errorf("очистка временного файла отчёта: %w", cleanupErr)
		}
	}()

	if err := output.NewJSONWriter().Write(pending, result); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось сериализовать отчёт", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось заменить файл отчёта "+path, err)
	}
	return nil
}
