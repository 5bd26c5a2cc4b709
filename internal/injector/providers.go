package injector

import (
	"github.com/zeusync/gridjam/internal/core/observability/log"
)

// ProvideLogger builds the process logger at the given level.
func ProvideLogger(level log.Level) *log.Logger {
	logger := log.New(level)
	return logger
}
