package wasmvm

import "go.uber.org/zap"

// logger is package-wide rather than threaded through every call because
// RunMain/RunFunction are the embedder-facing entry points and take no
// logger parameter; SetLogger follows the same resettable-global shape
// as settings.go's metering table.
var logger = zap.NewNop().Sugar()

// SetLogger installs the *zap.SugaredLogger the runtime uses for
// invocation-level diagnostics (traps, gas exhaustion). A nil logger
// reverts to a no-op logger.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}
