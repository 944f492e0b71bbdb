// Package main содержит точку входа boxing-smoke: смоук-прогон сценариев
// против HTTP API с проверкой маркера успеха в каждом ответе.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/scenarios"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет CLI и возвращает exit code. os.Exit вызывается только в main,
// чтобы defer-ы (shutdown трейсинга, закрытие истории) успели отработать.
func run(args []string, stdout, stderr io.Writer) int {
	scenarios.RegisterAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return constants.ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			_, _ = fmt.Fprintf(stderr, "Ошибка: %v\n", ee.err) //nolint:errcheck // stderr
		}
		return ee.code
	}

	// Ошибки разбора аргументов и флагов cobra.
	_, _ = fmt.Fprintf(stderr, "Ошибка: %v\n", err) //nolint:errcheck // stderr
	return constants.ExitUsage
}

// exitError связывает ошибку команды с кодом завершения.
// err == nil означает, что всё нужное уже выведено в отчёте.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}
