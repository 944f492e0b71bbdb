package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/di"
	"github.com/Kargones/boxing-smoke/internal/history"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

func newHistoryCmd(flags *runFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [scenario]",
		Short: "Последние прогоны из хранилища истории",
		Long: `Показывает последние прогоны, новые первыми. Требует BR_HISTORY_ENABLED=true
и доступного хранилища (BR_HISTORY_DRIVER, BR_HISTORY_DSN).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if !cfg.HistoryConfig.Enabled {
				return exitWith(constants.ExitConfig, apperrors.NewAppError(apperrors.ErrConfigValidate,
					"история прогонов выключена, задайте BR_HISTORY_ENABLED=true", nil))
			}

			logger := di.ProvideLogger(cfg)
			store, err := history.New(cmd.Context(), cfg.HistoryConfig.ToHistory(), logger)
			if err != nil {
				return exitWith(constants.ExitInternal, err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("ошибка закрытия хранилища истории", slog.String("error", err.Error()))
				}
			}()

			var scenarioName string
			if len(args) > 0 {
				scenarioName = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HistoryConfig.Timeout)
			defer cancel()
			runs, err := store.Recent(ctx, scenarioName, limit)
			if err != nil {
				return exitWith(constants.ExitInternal, err)
			}

			result := &output.Result{
				Status:  output.StatusSuccess,
				Command: "history",
				Data:    history.RunList(runs),
				Metadata: &output.Metadata{
					DurationMs: time.Since(start).Milliseconds(),
					APIVersion: constants.APIVersion,
				},
			}
			if err := di.ProvideOutputWriter(cfg).Write(cmd.OutOrStdout(), result); err != nil {
				return exitWith(constants.ExitInternal, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", history.DefaultLimit, "сколько прогонов показать")
	return cmd
}
