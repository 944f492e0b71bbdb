package alerting

import "strings"

// RulesConfig содержит правила фильтрации алертов.
type RulesConfig struct {
	// MinSeverity - минимальный уровень: "INFO", "WARNING", "CRITICAL".
	MinSeverity string `yaml:"minSeverity" env:"BR_ALERTING_RULES_MIN_SEVERITY" env-default:"INFO"`

	ExcludeErrorCodes []string `yaml:"excludeErrorCodes" env:"BR_ALERTING_RULES_EXCLUDE_ERRORS" env-separator:","`

	// IncludeErrorCodes - если задан, алерты отправляются только для этих кодов.
	IncludeErrorCodes []string `yaml:"includeErrorCodes" env:"BR_ALERTING_RULES_INCLUDE_ERRORS" env-separator:","`

	ExcludeScenarios []string `yaml:"excludeScenarios" env:"BR_ALERTING_RULES_EXCLUDE_SCENARIOS" env-separator:","`

	// IncludeScenarios - если задан, алерты отправляются только для этих сценариев.
	IncludeScenarios []string `yaml:"includeScenarios" env:"BR_ALERTING_RULES_INCLUDE_SCENARIOS" env-separator:","`

	// Channels - правила для отдельных каналов. Override полностью заменяет
	// глобальные правила для канала, поля не мержатся.
	Channels map[string]ChannelRulesConfig `yaml:"channels"`
}

// ChannelRulesConfig - правила для конкретного канала.
type ChannelRulesConfig struct {
	MinSeverity       string   `yaml:"minSeverity"`
	ExcludeErrorCodes []string `yaml:"excludeErrorCodes"`
	IncludeErrorCodes []string `yaml:"includeErrorCodes"`
	ExcludeScenarios  []string `yaml:"excludeScenarios"`
	IncludeScenarios  []string `yaml:"includeScenarios"`
}

type ruleSet struct {
	minSeverity Severity
	codes       filter
	scenarios   filter
}

// filter - include имеет приоритет над exclude.
type filter struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

func (f filter) allows(value string) bool {
	if len(f.include) > 0 {
		_, ok := f.include[value]
		return ok
	}
	_, excluded := f.exclude[value]
	return !excluded
}

// RulesEngine решает, отправлять ли алерт в канал.
type RulesEngine struct {
	global   ruleSet
	channels map[string]ruleSet
}

// NewRulesEngine создаёт RulesEngine из конфигурации.
func NewRulesEngine(config RulesConfig) *RulesEngine {
	engine := &RulesEngine{
		global: newRuleSet(config.MinSeverity, config.IncludeErrorCodes, config.ExcludeErrorCodes,
			config.IncludeScenarios, config.ExcludeScenarios),
		channels: make(map[string]ruleSet, len(config.Channels)),
	}
	for name, ch := range config.Channels {
		engine.channels[name] = newRuleSet(ch.MinSeverity, ch.IncludeErrorCodes, ch.ExcludeErrorCodes,
			ch.IncludeScenarios, ch.ExcludeScenarios)
	}
	return engine
}

// Evaluate возвращает true, если алерт должен уйти в канал channel.
func (e *RulesEngine) Evaluate(alert Alert, channel string) bool {
	rules, ok := e.channels[channel]
	if !ok {
		rules = e.global
	}

	if alert.Severity < rules.minSeverity {
		return false
	}
	return rules.codes.allows(alert.ErrorCode) && rules.scenarios.allows(alert.Scenario)
}

func newRuleSet(minSeverity string, includeCodes, excludeCodes, includeScenarios, excludeScenarios []string) ruleSet {
	return ruleSet{
		minSeverity: parseSeverity(minSeverity),
		codes:       filter{include: toSet(includeCodes), exclude: toSet(excludeCodes)},
		scenarios:   filter{include: toSet(includeScenarios), exclude: toSet(excludeScenarios)},
	}
}

// parseSeverity конвертирует строку в Severity, неизвестное значение даёт INFO.
func parseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WARNING":
		return SeverityWarning
	case "CRITICAL":
		return SeverityCritical
	default:
		return SeverityInfo
	}
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}
