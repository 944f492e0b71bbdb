package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
	"github.com/Kargones/boxing-smoke/internal/scenario"
)

// scenarioList - payload команды list.
type scenarioList []scenario.Info

// RenderText выводит сценарии с числом шагов и устаревшими именами.
func (l scenarioList) RenderText(w io.Writer) error {
	for _, info := range l {
		line := fmt.Sprintf("  %-12s %2d шагов  %s", info.Name, info.Steps, info.Description)
		if info.DeprecatedAlias != "" {
			line += fmt.Sprintf(" (устаревшее имя: %s)", info.DeprecatedAlias)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newListCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список встроенных сценариев",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			format, err := outputFormat(cmd, flags)
			if err != nil {
				return err
			}

			result := &output.Result{
				Status:  output.StatusSuccess,
				Command: "list",
				Data:    scenarioList(scenario.ListAllWithAliases()),
				Metadata: &output.Metadata{
					DurationMs: time.Since(start).Milliseconds(),
					APIVersion: constants.APIVersion,
				},
			}
			if err := output.NewWriter(format).Write(cmd.OutOrStdout(), result); err != nil {
				return exitWith(constants.ExitInternal, err)
			}
			return nil
		},
	}
}
