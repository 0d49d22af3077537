// Package applog builds the structured logger shared by the kvhttpd
// binary and the net/kvhttp package. It exists so neither package holds
// a package-level logger singleton; callers construct one at startup and
// pass it down explicitly.
package applog

import "go.uber.org/zap"

// New builds a production logger, or a development one (human-readable,
// debug-level) when debug is true.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests that don't
// want to assert on log output.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
