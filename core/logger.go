package core

// Logger is implemented by the logging services. Extra args may carry an error,
// the current *http.Request or a map[string]interface{} of custom fields.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
