package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kargones/boxing-smoke/internal/config"
	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/di"
	"github.com/Kargones/boxing-smoke/internal/history"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/dryrun"
	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
	"github.com/Kargones/boxing-smoke/internal/pkg/progress"
	"github.com/Kargones/boxing-smoke/internal/pkg/tracing"
	"github.com/Kargones/boxing-smoke/internal/report"
	"github.com/Kargones/boxing-smoke/internal/scenario"
	"github.com/Kargones/boxing-smoke/internal/smoke"
)

const shutdownTimeout = 5 * time.Second

// runFlags - флаги прогона. Заданный флаг приоритетнее BR_* переменной.
type runFlags struct {
	format       string
	baseURL      string
	echoJSON     bool
	dryRun       bool
	strict       bool
	scenarioFile string
	reportFile   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "boxing-smoke [scenario]",
		Short: "Смоук-прогон сценария против HTTP API",
		Long: `Выполняет шаги сценария строго по порядку. Шаг успешен, если тело ответа
содержит маркер успеха (по умолчанию "status": "success"). Первый неуспешный
шаг останавливает прогон с кодом 1.

Без аргумента выполняется сценарий из BR_SCENARIO (по умолчанию boxing).

Коды завершения: 0 успех, 1 шаг не прошёл, 2 неверные аргументы,
5 ошибка конфигурации, 8 внутренняя ошибка.`,
		Example: `  boxing-smoke
  boxing-smoke --echo-json --base-url http://staging:5000/api
  boxing-smoke playlist --format json --report-file out/report.json
  boxing-smoke --scenario-file smoke.yaml --dry-run`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, args, flags)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&flags.format, "format", "", "формат вывода: text или json (BR_OUTPUT_FORMAT)")

	f := root.Flags()
	f.StringVar(&flags.baseURL, "base-url", "", "базовый URL API (BR_BASE_URL)")
	f.BoolVar(&flags.echoJSON, "echo-json", false, "выводить тело каждого успешного ответа (BR_ECHO_JSON)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "показать план запросов без обращения к API (BR_DRY_RUN)")
	f.BoolVar(&flags.strict, "strict-envelope", false, "проверять ответы по схеме {status, message} (BR_STRICT_ENVELOPE)")
	f.StringVar(&flags.scenarioFile, "scenario-file", "", "YAML файл сценария вместо встроенного (BR_SCENARIO_FILE)")
	f.StringVar(&flags.reportFile, "report-file", "", "записать JSON отчёт в файл (BR_REPORT_FILE)")

	root.AddCommand(
		newListCmd(flags),
		newHistoryCmd(flags),
		newVersionCmd(flags),
	)
	return root
}

// applyFlags переносит явно заданные флаги в конфигурацию и повторно её валидирует.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) error {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("format") {
		cfg.API.OutputFormat = strings.ToLower(flags.format)
	}
	if changed("base-url") {
		cfg.API.BaseURL = flags.baseURL
	}
	if changed("echo-json") {
		cfg.API.EchoJSON = flags.echoJSON
	}
	if changed("strict-envelope") {
		cfg.API.StrictEnvelope = flags.strict
	}
	if changed("scenario-file") {
		cfg.API.ScenarioFile = flags.scenarioFile
	}
	if changed("report-file") {
		cfg.API.ReportFile = flags.reportFile
	}

	if err := cfg.API.Validate(); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate, "некорректные параметры запуска", err)
	}
	return nil
}

// loadConfig загружает конфигурацию и накладывает флаги.
func loadConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, exitWith(constants.ExitConfig, err)
	}
	if err := applyFlags(cmd, cfg, flags); err != nil {
		return nil, exitWith(constants.ExitConfig, err)
	}
	return cfg, nil
}

// resolveScenario выбирает сценарий: файл, аргумент или BR_SCENARIO.
func resolveScenario(cfg *config.Config, args []string, warn io.Writer) (*scenario.Scenario, error) {
	if cfg.API.ScenarioFile != "" {
		sc, err := scenario.LoadFile(cfg.API.ScenarioFile)
		if err != nil {
			return nil, exitWith(constants.ExitUsage, err)
		}
		return sc, nil
	}

	name := cfg.API.Scenario
	if len(args) > 0 {
		name = args[0]
	}

	sc, ok := scenario.Resolve(name, warn)
	if !ok {
		return nil, exitWith(constants.ExitUsage, apperrors.NewAppError(apperrors.ErrScenarioNotFound,
			fmt.Sprintf("неизвестный сценарий %q, доступны: %s", name, strings.Join(scenario.Names(), ", ")), nil))
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string, flags *runFlags) error {
	start := time.Now()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	sc, err := resolveScenario(cfg, args, stderr)
	if err != nil {
		return err
	}

	if dryRunEnabled(cmd, flags) {
		plan := smoke.Plan("run", sc, cfg.API.BaseURL)
		if err := output.WriteDryRunResult(stdout, strings.ToLower(cfg.API.OutputFormat), "run",
			tracing.GenerateTraceID(), constants.APIVersion, start, plan); err != nil {
			return exitWith(constants.ExitInternal, err)
		}
		return nil
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return exitWith(constants.ExitConfig, err)
	}
	// scenario добавляет сам runner, поэтому в его логгере только trace_id.
	runLogger := app.Logger.With(slog.String("trace_id", app.TraceID))
	logger := runLogger.With(slog.String("scenario", sc.Name))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.Error("ошибка завершения зависимостей", slog.String("error", err.Error()))
		}
	}()

	logger.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	ctx := tracing.WithTraceID(cmd.Context(), app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)

	jsonOutput := strings.EqualFold(cfg.API.OutputFormat, output.FormatJSON)
	opts := smoke.Options{
		BaseURL:        cfg.API.BaseURL,
		SuccessMarker:  cfg.API.SuccessMarker,
		StrictEnvelope: cfg.API.StrictEnvelope,
		EmbedResponses: cfg.API.EchoJSON && jsonOutput,
	}
	if cfg.API.EchoJSON && !jsonOutput {
		opts.Echo = stdout
	}

	runner, err := smoke.NewRunner(app.APIClient, opts, smoke.Deps{
		Logger:   runLogger,
		Metrics:  app.MetricsCollector,
		Alerter:  app.Alerter,
		Progress: progressFactory(cfg.API.OutputFormat, stderr, logger),
	})
	if err != nil {
		return exitWith(constants.ExitInternal, err)
	}

	rep, runErr := runner.Run(ctx, sc)

	if err := app.HistoryStore.Save(ctx, history.RunFromReport(rep, app.TraceID)); err != nil {
		logger.Warn("не удалось сохранить прогон в историю", slog.String("error", err.Error()))
	}
	_ = app.MetricsCollector.Push(ctx) //nolint:errcheck // ошибки push логируются внутри

	result := buildRunResult(rep, runErr, app.TraceID, start)

	exitCode := constants.ExitOK
	if runErr != nil {
		exitCode = constants.ExitStepFailed
	}

	if err := app.OutputWriter.Write(stdout, result); err != nil {
		logger.Error("ошибка вывода результата", slog.String("error", err.Error()))
		exitCode = constants.ExitInternal
	}

	if cfg.API.ReportFile != "" {
		if err := report.WriteFile(cfg.API.ReportFile, result); err != nil {
			logger.Error("ошибка записи отчёта",
				slog.String("path", cfg.API.ReportFile),
				slog.String("error", err.Error()),
			)
			exitCode = constants.ExitInternal
		}
	}

	if exitCode == constants.ExitOK {
		return nil
	}
	return exitWith(exitCode, nil)
}

// progressFactory выбирает вид прогресса по действующему формату вывода.
func progressFactory(format string, w io.Writer, logger logging.Logger) func(total int) progress.Progress {
	return func(total int) progress.Progress {
		return progress.New(progress.Options{
			Total:  int64(total),
			Output: w,
			Format: format,
			Logger: logger,
		})
	}
}

// dryRunEnabled: явно заданный --dry-run (в том числе =false) приоритетнее BR_DRY_RUN.
func dryRunEnabled(cmd *cobra.Command, flags *runFlags) bool {
	if fl := cmd.Flags().Lookup("dry-run"); fl != nil && fl.Changed {
		return flags.dryRun
	}
	return dryrun.IsDryRun()
}

// buildRunResult собирает Result прогона для вывода и файла отчёта.
func buildRunResult(rep *smoke.Report, runErr error, traceID string, start time.Time) *output.Result {
	summary := output.NewSummaryInfo()
	summary.AddMetric("Шагов выполнено", fmt.Sprintf("%d/%d", rep.Executed(), rep.TotalSteps), "")
	for _, w := range rep.Warnings {
		summary.AddWarning(w)
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: "run",
		Data:    rep,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			RunID:      rep.RunID,
			APIVersion: constants.APIVersion,
		},
		Summary: summary,
	}

	if runErr != nil {
		code := apperrors.CodeOf(runErr)
		if code == "" {
			code = apperrors.ErrStepRequest
		}
		msg := runErr.Error()
		var appErr *apperrors.AppError
		if errors.As(runErr, &appErr) {
			msg = appErr.Message
		}
		result.Status = output.StatusError
		result.Error = &output.ErrorInfo{Code: code, Message: msg}
	}
	return result
}

// outputFormat для команд без загрузки конфигурации: флаг, затем BR_OUTPUT_FORMAT.
func outputFormat(cmd *cobra.Command, flags *runFlags) (string, error) {
	format := os.Getenv(constants.EnvOutputFormat)
	if fl := cmd.Flags().Lookup("format"); fl != nil && fl.Changed {
		format = flags.format
	}
	if format == "" {
		return output.FormatText, nil
	}
	if !output.IsValidFormat(format) {
		return "", exitWith(constants.ExitConfig, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"некорректные параметры запуска", fmt.Errorf("%w, получено: %q", config.ErrOutputFormatInvalid, format)))
	}
	return strings.ToLower(format), nil
}
