// Package config загружает конфигурацию boxing-smoke.
//
// Источники в порядке приоритета:
//  1. переменные окружения BR_*;
//  2. YAML файл из BR_CONFIG_FILE (секции api, logging, metrics, tracing, alerting, history);
//  3. значения по умолчанию из тегов env-default.
//
// Некорректная секция API завершает загрузку с CONFIG.VALIDATION_FAILED.
// Некорректные необязательные секции (metrics, tracing, alerting, history)
// отключаются с предупреждением в лог.
package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
)

// Config - итоговая конфигурация запуска.
type Config struct {
	// ConfigFile - путь к YAML файлу, пусто если файл не задан.
	ConfigFile string

	// API - параметры обращения к тестируемому API и выбора сценария.
	API APIConfig

	// AppConfig - содержимое YAML файла как есть, nil без BR_CONFIG_FILE.
	AppConfig *AppConfig

	LoggingConfig  *LoggingConfig
	MetricsConfig  *MetricsConfig
	TracingConfig  *TracingConfig
	AlertingConfig *AlertingConfig
	HistoryConfig  *HistoryConfig
}

// AppConfig - структура YAML файла приложения.
type AppConfig struct {
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Alerting AlertingConfig `yaml:"alerting"`
	History  HistoryConfig  `yaml:"history"`
}

type fileParams struct {
	ConfigFile string `env:"BR_CONFIG_FILE"`
}

// Load читает конфигурацию, логируя процесс загрузки в stderr.
func Load() (*Config, error) {
	return LoadWithLogger(bootstrapLogger())
}

// LoadWithLogger читает конфигурацию, используя l для сообщений загрузки.
// Ошибка всегда имеет тип *apperrors.AppError с категорией CONFIG.
func LoadWithLogger(l *slog.Logger) (*Config, error) {
	var params fileParams
	if err := cleanenv.ReadEnv(&params); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения", err)
	}

	cfg := &Config{ConfigFile: params.ConfigFile}

	appConfig, err := loadAppConfig(l, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.AppConfig = appConfig

	apiConfig, err := loadAPIConfig(l, cfg)
	if err != nil {
		return nil, err
	}
	cfg.API = *apiConfig

	cfg.LoggingConfig = loadLoggingConfig(l, cfg)
	cfg.MetricsConfig = loadMetricsConfig(l, cfg)
	cfg.TracingConfig = loadTracingConfig(l, cfg)
	cfg.AlertingConfig = loadAlertingConfig(l, cfg)
	cfg.HistoryConfig = loadHistoryConfig(l, cfg)

	return cfg, nil
}

// loadAppConfig читает YAML файл. Пустой путь означает работу только по env.
func loadAppConfig(l *slog.Logger, path string) (*AppConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // путь задаёт оператор через BR_CONFIG_FILE
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать файл конфигурации "+path, err)
	}

	var appConfig AppConfig
	if err = unmarshalYAML(data, &appConfig); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"ошибка парсинга файла конфигурации "+path, err)
	}

	l.Info("Файл конфигурации загружен", slog.String("path", path))
	return &appConfig, nil
}

// unmarshalYAML разбирает файл строго: неизвестный ключ считается ошибкой,
// опечатка в имени секции не должна молча отключать её. Пустой файл допустим.
func unmarshalYAML(data []byte, out *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bootstrapLogger создаёт логгер загрузки конфигурации. Основной логгер
// строится позже из LoggingConfig, поэтому уровень здесь читается напрямую из BR_LOG_LEVEL.
func bootstrapLogger() *slog.Logger {
	level := new(slog.LevelVar)
	switch os.Getenv("BR_LOG_LEVEL") {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}

	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return l.With(slog.String("version", constants.Version))
}
