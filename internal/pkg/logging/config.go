package logging

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию для Config.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/boxing-smoke.log"
	DefaultMaxSize    = 50 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 14 // days
	DefaultCompress   = true
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config содержит настройки логирования.
// Поля ротации (MaxSize, MaxBackups, MaxAge, Compress) учитываются только при Output="file".
type Config struct {
	// Format - "json" или "text".
	Format string

	// Level - минимальный уровень: "debug", "info", "warn", "error".
	Level string

	// Output - "stderr" или "file".
	Output string

	// FilePath - путь к файлу логов при Output="file".
	FilePath string

	// MaxSize - размер файла в МБ, после которого выполняется ротация.
	MaxSize int

	// MaxBackups - сколько ротированных файлов хранить.
	MaxBackups int

	// MaxAge - сколько дней хранить ротированные файлы.
	MaxAge int

	// Compress - сжимать ротированные файлы в gzip.
	Compress bool
}
