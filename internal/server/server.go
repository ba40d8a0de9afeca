package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"regplace-bot/internal/alert"
	"regplace-bot/internal/config"
	"regplace-bot/internal/logging"
	"regplace-bot/internal/report"
	"regplace-bot/internal/summary"
)

type Queries interface {
	Summary(ctx context.Context) (summary.Report, error)
	Heat(ctx context.Context, input string) (string, error)
}

// New serves the same answers the bot gives, as plain text, for operators.
func New(cfg config.Config, q Queries, log *zap.Logger, alerts alert.Notifier) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: Routes(q, log, alerts),
	}
}

func Routes(q Queries, log *zap.Logger, alerts alert.Notifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})

	r.Get("/race", func(w http.ResponseWriter, r *http.Request) {
		rep, err := q.Summary(r.Context())
		if err != nil {
			fail(w, log, alerts, "race summary", err)
			return
		}
		report.Warnings(log, alerts, "race summary", rep.Warnings)
		writeText(w, http.StatusOK, rep.Text)
	})

	r.Get("/heats/{number}", func(w http.ResponseWriter, r *http.Request) {
		text, err := q.Heat(r.Context(), chi.URLParam(r, "number"))
		if err != nil {
			fail(w, log, alerts, "heat lookup", err)
			return
		}
		writeText(w, http.StatusOK, text)
	})

	return r
}

func fail(w http.ResponseWriter, log *zap.Logger, alerts alert.Notifier, op string, err error) {
	f := report.Error(log, alerts, op, err)
	if f.Kind == logging.KindUserInput {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	writeText(w, http.StatusBadGateway, err.Error())
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
