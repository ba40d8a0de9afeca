package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Kinds of failures, logged in the "kind" field so table updates and
// upstream outages can be told apart.
const (
	KindTransport    = "transport"
	KindExtraction   = "extraction"
	KindUnmappedCode = "unmapped_code"
	KindUpstream     = "upstream"
	KindFeeMismatch  = "fee_mismatch"
	KindUserInput    = "user_input"
)

// Critical marks an entry that needs operator attention.
func Critical() zap.Field { return zap.Bool("critical", true) }

// New builds a production (json) or development (console) logger. When file
// is set the log is written there as well as to stderr.
func New(level, format, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch format {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "text", "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}
	return cfg.Build()
}
