package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

type versionInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	APIVersion string `json:"api_version"`
}

func (v versionInfo) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s (commit %s, формат вывода %s)\n", v.Name, v.Version, v.Commit, v.APIVersion)
	return err
}

func newVersionCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия boxing-smoke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, flags)
			if err != nil {
				return err
			}
			result := &output.Result{
				Status:  output.StatusSuccess,
				Command: "version",
				Data: versionInfo{
					Name:       constants.AppName,
					Version:    constants.Version,
					Commit:     constants.PreCommitHash,
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
