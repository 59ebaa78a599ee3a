package obs

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the shared structured logger used across the service.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.New(os.Stdout, "", 0)
	})
	return logger
}

// Log emits a structured JSON log line built from the given fields.
func Log(entry map[string]any) {
	data, err := json.Marshal(entry)
	if err != nil {
		Logger().Println(`{"level":"error","msg":"log marshal failed"}`)
		return
	}
	Logger().Println(string(data))
}

// Warn emits a warning-level line with a message and optional fields.
func Warn(msg string, fields map[string]any) {
	entry := map[string]any{"level": "warn", "msg": msg}
	for k, v := range fields {
		entry[k] = v
	}
	Log(entry)
}

// Error emits an error-level line with a message and optional fields.
func Error(msg string, fields map[string]any) {
	entry := map[string]any{"level": "error", "msg": msg}
	for k, v := range fields {
		entry[k] = v
	}
	Log(entry)
}
