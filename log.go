package gimbal

import "go.uber.org/zap"

// logger receives configuration errors reported by the package. It discards
// everything until SetLogger is called.
var logger = zap.NewNop()

// SetLogger installs l as the package logger. A nil l restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
