package dsbuf

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// LogFn receives diagnostic messages from a Buffer. A length of 0 means
// there is nothing to print. The function must not call back into the
// Buffer that invoked it.
type LogFn func(msg string, length int)

// NewLogFn adapts a go-kit logger into a LogFn. Messages are emitted at
// debug level.
func NewLogFn(logger log.Logger) LogFn {
	logger = log.With(logger, "component", "dsbuf")
	return func(msg string, length int) {
		if length == 0 {
			return
		}
		if length < len(msg) {
			msg = msg[:length]
		}
		level.Debug(logger).Log("msg", strings.TrimSpace(msg))
	}
}
