package stripe

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчик отказов внешних вызовов
type Metrics interface {
	IncExternalCallError(collaborator, operation string)
}
