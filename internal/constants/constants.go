// Package constants содержит константы, используемые в проекте boxing-smoke.
package constants

// Информация о сборке. Переопределяется через -ldflags при сборке:
//
//	go build -ldflags "-X github.com/Kargones/boxing-smoke/internal/constants.Version=1.2.0"
var (
	// Version - версия приложения
	Version = "dev"
	// PreCommitHash - хэш коммита, из которого собран бинарник
	PreCommitHash = "unknown"
)

const (
	// AppName - имя приложения (используется в User-Agent, метриках и алертах)
	AppName = "boxing-smoke"
	// APIVersion - версия формата JSON вывода
	APIVersion = "v1"
)

// Значения по умолчанию для обращения к API.
const (
	// DefaultBaseURL - базовый URL тестируемого API
	DefaultBaseURL = "http://localhost:5000/api"
	// DefaultSuccessMarker - подстрока, наличие которой в теле ответа означает успех
	DefaultSuccessMarker = `"status": "success"`
	// DefaultScenario - сценарий, выполняемый без явного указания
	DefaultScenario = "boxing"
)

// Переменные окружения, читаемые вне cleanenv.
const (
	// EnvDryRun - включает dry-run режим
	EnvDryRun = "BR_DRY_RUN"
	// EnvOutputFormat - формат вывода результата (text, json)
	EnvOutputFormat = "BR_OUTPUT_FORMAT"
	// EnvShowProgress - "false" отключает вывод прогресса
	EnvShowProgress = "BR_SHOW_PROGRESS"
)

// Коды завершения процесса.
const (
	// ExitOK - все шаги выполнены успешно
	ExitOK = 0
	// ExitStepFailed - шаг сценария завершился неуспешно
	ExitStepFailed = 1
	// ExitUsage - неизвестный сценарий или неверные аргументы
	ExitUsage = 2
	// ExitConfig - не удалось загрузить конфигурацию
	ExitConfig = 5
	// ExitInternal - внутренняя ошибка (вывод, история)
	ExitInternal = 8
)
