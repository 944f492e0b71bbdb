package constants

import "os"

// Права на создаваемые директории и файлы (лог, отчёт, база истории).
const (
	// DirPermStandard - владелец rwx, группа r-x
	DirPermStandard os.FileMode = 0750
	// FilePermReadWrite - владелец rw, остальные r
	FilePermReadWrite os.FileMode = 0644
)
