// Package dryrun содержит помощники режима BR_DRY_RUN: прогон строит план
// запросов и печатает его, не обращаясь к API.
package dryrun

import (
	"os"
	"regexp"
	"strings"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

// IsDryRun возвращает true при BR_DRY_RUN=true (без учёта регистра) или BR_DRY_RUN=1.
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}

// BuildPlan создаёт план для сценария.
func BuildPlan(command, scenario string, steps []output.PlanStep) *output.DryRunPlan {
	return &output.DryRunPlan{
		Command:          command,
		Scenario:         scenario,
		Steps:            steps,
		ValidationPassed: true,
	}
}

// BuildPlanWithSummary создаёт план с кратким итогом.
func BuildPlanWithSummary(command, scenario string, steps []output.PlanStep, summary string) *output.DryRunPlan {
	plan := BuildPlan(command, scenario, steps)
	plan.Summary = summary
	return plan
}

var secretRegexes = []*regexp.Regexp{
	// password=...; и pwd=...; в connection string SQL Server.
	regexp.MustCompile(`(?i)(password=)([^;&]+)`),
	regexp.MustCompile(`(?i)(pwd=)([^;&]+)`),
	// user:password@host в URL.
	regexp.MustCompile(`(://[^:/@\s]+:)([^@\s]+)(@)`),
}

// MaskSecrets маскирует пароли в DSN хранилища истории, чтобы они не попали в план.
//
//	"sqlserver://sa:secret@db:1433?database=smoke" → "sqlserver://sa:***@db:1433?database=smoke"
func MaskSecrets(dsn string) string {
	result := dsn
	for i, re := range secretRegexes {
		if i < 2 {
			result = re.ReplaceAllString(result, "$1***")
		} else {
			result = re.ReplaceAllString(result, "$1***$3")
		}
	}
	return result
}
