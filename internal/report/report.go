// Package report turns a failed or degraded query into its single log entry
// and, where an operator has to act, an alert. The bot and the ops HTTP
// surface both go through it.
package report

import (
	"errors"

	"go.uber.org/zap"

	"regplace-bot/internal/alert"
	"regplace-bot/internal/codes"
	"regplace-bot/internal/jsondoc"
	"regplace-bot/internal/logging"
	"regplace-bot/internal/lookup"
	"regplace-bot/internal/regplace"
	"regplace-bot/internal/summary"
)

// Failure is what callers need to build their answer.
type Failure struct {
	Kind   string
	Status int // upstream status, KindTransport only
}

func Classify(err error) Failure {
	var (
		te *regplace.TransportError
		ue *codes.UnmappedCodeError
		ee *jsondoc.ExtractionError
		fm *summary.FeeMismatchError
	)
	switch {
	case errors.Is(err, lookup.ErrInvalidInput):
		return Failure{Kind: logging.KindUserInput}
	case errors.As(err, &te):
		return Failure{Kind: logging.KindTransport, Status: te.StatusCode}
	case errors.As(err, &ue):
		return Failure{Kind: logging.KindUnmappedCode}
	case errors.As(err, &ee):
		return Failure{Kind: logging.KindExtraction}
	case errors.As(err, &fm):
		return Failure{Kind: logging.KindFeeMismatch}
	}
	return Failure{Kind: logging.KindUpstream}
}

// Error writes the one log entry for a failed request. Unmapped codes and
// extraction failures also alert the operator.
func Error(log *zap.Logger, alerts alert.Notifier, op string, err error) Failure {
	f := Classify(err)
	fields := []zap.Field{zap.String("op", op), zap.String("kind", f.Kind), zap.Error(err)}

	switch f.Kind {
	case logging.KindUserInput:
		log.Info("rejected input", fields...)
	case logging.KindTransport:
		log.Error("upstream status", append(fields, zap.Int("status", f.Status), logging.Critical())...)
	case logging.KindUnmappedCode:
		var ue *codes.UnmappedCodeError
		errors.As(err, &ue)
		log.Error("unmapped code", append(fields,
			zap.String("table", ue.Table), zap.String("code", ue.Code), logging.Critical())...)
		alerts.Notify(f.Kind, err)
	case logging.KindExtraction:
		log.Error("extraction failed", append(fields, logging.Critical())...)
		alerts.Notify(f.Kind, err)
	default:
		log.Error("upstream failed", append(fields, logging.Critical())...)
	}
	return f
}

// Warnings logs conditions that did not stop the answer, such as
// inconsistent fees, and alerts on each.
func Warnings(log *zap.Logger, alerts alert.Notifier, op string, warns []error) {
	for _, w := range warns {
		kind := Classify(w).Kind
		log.Warn(op, zap.String("kind", kind), zap.Error(w))
		alerts.Notify(kind, w)
	}
}
