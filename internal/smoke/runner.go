// Package smoke выполняет смоук-сценарии: шаги идут строго по порядку,
// успех каждого шага определяется наличием маркера в теле ответа,
// первый провал останавливает прогон.
package smoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/boxing-smoke/internal/apiclient"
	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/alerting"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/metrics"
	"github.com/Kargones/boxing-smoke/internal/pkg/progress"
	"github.com/Kargones/boxing-smoke/internal/pkg/tracing"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
	"github.com/Kargones/boxing-smoke/internal/scenario"
)

// Options управляет проверками и выводом прогона.
type Options struct {
	// BaseURL попадает в отчёт и алерты (учётные данные маскируются).
	BaseURL string

	// SuccessMarker - литеральная подстрока, обязательная в теле каждого ответа.
	// Пустое значение означает constants.DefaultSuccessMarker.
	SuccessMarker string

	// StrictEnvelope дополнительно проверяет тело по JSON Schema конверта.
	StrictEnvelope bool

	// Echo получает pretty-print тел успешных ответов. nil выключает эхо.
	Echo io.Writer

	// EmbedResponses встраивает тела ответов в отчёт (json вывод).
	EmbedResponses bool
}

// Deps - инфраструктура прогона. Нулевые поля заменяются nop реализациями.
type Deps struct {
	Logger  logging.Logger
	Metrics metrics.Collector
	Alerter alerting.Alerter

	// Progress создаёт индикатор на total шагов.
	Progress func(total int) progress.Progress
}

// Runner выполняет сценарии через apiclient.Client.
type Runner struct {
	client      apiclient.Client
	opts        Options
	logger      logging.Logger
	metrics     metrics.Collector
	alerter     alerting.Alerter
	newProgress func(total int) progress.Progress
	schema      *jsonschema.Schema
	now         func() time.Time
}

// NewRunner создаёт Runner. Ошибка возможна только при компиляции схемы конверта.
func NewRunner(client apiclient.Client, opts Options, deps Deps) (*Runner, error) {
	if opts.SuccessMarker == "" {
		opts.SuccessMarker = constants.DefaultSuccessMarker
	}

	r := &Runner{
		client:      client,
		opts:        opts,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		alerter:     deps.Alerter,
		newProgress: deps.Progress,
		now:         time.Now,
	}
	if r.logger == nil {
		r.logger = logging.NewNopLogger()
	}
	if r.metrics == nil {
		r.metrics = metrics.NewNopCollector()
	}
	if r.alerter == nil {
		r.alerter = alerting.NewNopAlerter()
	}
	if r.newProgress == nil {
		r.newProgress = func(int) progress.Progress { return progress.NewNoOp() }
	}

	if opts.StrictEnvelope {
		schema, err := compileEnvelopeSchema()
		if err != nil {
			return nil, err
		}
		r.schema = schema
	}
	return r, nil
}

// Run выполняет шаги сценария по порядку и возвращает отчёт.
// Отчёт возвращается всегда, в том числе вместе с ошибкой: в нём только выполненные шаги.
// Ошибка - *apperrors.AppError с кодом категории STEP.
func (r *Runner) Run(ctx context.Context, sc *scenario.Scenario) (*Report, error) {
	start := r.now()
	report := &Report{
		RunID:      uuid.NewString(),
		Scenario:   sc.Name,
		BaseURL:    urlutil.RedactURL(r.opts.BaseURL),
		StartedAt:  start.UTC(),
		TotalSteps: len(sc.Steps),
		Steps:      make([]StepResult, 0, len(sc.Steps)),
	}

	ctx, span := tracing.Tracer().Start(ctx, "smoke.run", trace.WithAttributes(
		attribute.String("smoke.scenario", sc.Name),
		attribute.String("smoke.run_id", report.RunID),
		attribute.Int("smoke.steps", len(sc.Steps)),
	))
	defer span.End()

	log := r.logger.With("scenario", sc.Name, "run_id", report.RunID)
	log.Info("Прогон сценария начат", "steps", len(sc.Steps), "base_url", report.BaseURL)

	vars := maps.Clone(sc.Vars)
	if vars == nil {
		vars = make(map[string]string)
	}

	prog := r.newProgress(len(sc.Steps))
	prog.Start("Сценарий " + sc.Name)

	var runErr error
	for i := range sc.Steps {
		step := &sc.Steps[i]
		result, err := r.runStep(ctx, log, sc.Name, step, vars, report)
		report.Steps = append(report.Steps, result)
		prog.Update(int64(i+1), step.Name)
		if err != nil {
			runErr = err
			report.FailedStep = step.Name
			break
		}
	}
	prog.Finish()

	elapsed := r.now().Sub(start)
	report.DurationMs = elapsed.Milliseconds()
	report.Passed = runErr == nil
	r.metrics.RecordRun(sc.Name, elapsed, report.Passed)

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, apperrors.CodeOf(runErr))
		log.Error("Прогон сценария провален",
			"step", report.FailedStep,
			"error_code", apperrors.CodeOf(runErr),
			"executed", report.Executed(),
			"duration_ms", report.DurationMs,
		)
		r.sendAlert(ctx, report, runErr)
		return report, runErr
	}

	log.Info("Прогон сценария завершён", "duration_ms", report.DurationMs, "warnings", len(report.Warnings))
	return report, nil
}

// runStep выполняет один шаг. vars обновляются захваченными значениями.
func (r *Runner) runStep(ctx context.Context, log logging.Logger, scenarioName string, step *scenario.Step,
	vars map[string]string, report *Report) (StepResult, error) {
	result := StepResult{Name: step.Name, Method: step.Method, Path: step.Path}

	ctx, span := tracing.Tracer().Start(ctx, "smoke.step "+step.Name, trace.WithAttributes(
		attribute.String("smoke.step", step.Name),
		attribute.String("http.request.method", step.Method),
	))
	defer span.End()

	start := r.now()
	finish := func(passed bool) {
		elapsed := r.now().Sub(start)
		result.DurationMs = elapsed.Milliseconds()
		result.Passed = passed
		r.metrics.RecordStep(scenarioName, step.Name, elapsed, passed)
	}
	fail := func(code, message string, cause error) (StepResult, error) {
		finish(false)
		result.ErrorCode = code
		result.Error = message
		appErr := apperrors.NewAppError(code, fmt.Sprintf("шаг %s: %s", step.Name, message), cause)
		span.RecordError(appErr)
		span.SetStatus(codes.Error, code)
		log.Warn("Шаг не пройден", "step", step.Name, "error_code", code, "error", appErr.Error())
		return result, appErr
	}

	if err := ctx.Err(); err != nil {
		return fail(apperrors.ErrStepRequest, "прогон прерван", err)
	}

	path, err := scenario.ResolvePath(step.Path, vars)
	if err != nil {
		return fail(apperrors.ErrStepTemplate, "не удалось подставить переменные в путь", err)
	}
	query := step.QueryValues()
	result.Path = displayPath(path, query)
	span.SetAttributes(attribute.String("url.path", result.Path))

	resp, err := r.client.Do(ctx, apiclient.Request{
		Method: step.Method,
		Path:   path,
		Query:  query,
		Body:   step.Body,
	})
	if err != nil {
		return fail(apperrors.ErrStepRequest, "запрос не выполнен", err)
	}

	result.StatusCode = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if r.opts.EmbedResponses {
		result.Response = embedResponse(resp.Body)
	}

	if !bytes.Contains(resp.Body, []byte(r.opts.SuccessMarker)) {
		where := "в ответе"
		if resp.Truncated {
			where = fmt.Sprintf("в первых %d байтах ответа (тело обрезано)", len(resp.Body))
		}
		return fail(apperrors.ErrStepMarkerMissing,
			fmt.Sprintf("маркер %s не найден %s (HTTP %d): %s",
				r.opts.SuccessMarker, where, resp.StatusCode, excerpt(resp.Body, resp.Header.Get("Content-Type"))),
			nil)
	}

	if r.schema != nil {
		if err := validateEnvelope(r.schema, resp.Body); err != nil {
			return fail(apperrors.ErrStepSchema, "ответ не соответствует схеме конверта", err)
		}
	}

	if r.opts.Echo != nil {
		if err := writeEcho(r.opts.Echo, step.Name, resp.Body); err != nil {
			log.Warn("Не удалось вывести ответ", "step", step.Name, "error", err.Error())
		}
	}

	captured, missing := captureValues(resp.Body, step.Capture)
	for name, value := range captured {
		vars[name] = value
	}
	if len(captured) > 0 {
		result.Captured = captured
	}
	for _, name := range missing {
		warning := missingCaptureWarning(step, name, vars)
		report.Warnings = append(report.Warnings, warning)
		log.Warn("Значение не захвачено", "step", step.Name, "var", name, "key", step.Capture[name])
	}

	finish(true)
	log.Debug("Шаг пройден", "step", step.Name, "status_code", resp.StatusCode, "duration_ms", result.DurationMs)
	return result, nil
}

func missingCaptureWarning(step *scenario.Step, name string, vars map[string]string) string {
	if value, ok := vars[name]; ok {
		return fmt.Sprintf("шаг %s: ключ %q не найден в ответе, %s остаётся %s",
			step.Name, step.Capture[name], name, value)
	}
	return fmt.Sprintf("шаг %s: ключ %q не найден в ответе, %s не задана",
		step.Name, step.Capture[name], name)
}

// displayPath склеивает путь и query для отчёта.
func displayPath(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func (r *Runner) sendAlert(ctx context.Context, report *Report, runErr error) {
	message := runErr.Error()
	var appErr *apperrors.AppError
	if errors.As(runErr, &appErr) {
		message = appErr.Message
	}

	_ = r.alerter.Send(ctx, alerting.Alert{ //nolint:errcheck // Send всегда возвращает nil
		ErrorCode: apperrors.CodeOf(runErr),
		Message:   message,
		TraceID:   tracing.TraceIDFromContext(ctx),
		Timestamp: r.now(),
		Scenario:  report.Scenario,
		Step:      report.FailedStep,
		BaseURL:   report.BaseURL,
		Severity:  alerting.SeverityCritical,
	})
}
