package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"regplace-bot/internal/alert"
	"regplace-bot/internal/config"
	"regplace-bot/internal/lookup"
	"regplace-bot/internal/server"
	"regplace-bot/internal/tgbot"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg config.Config, log *zap.Logger, svc *lookup.Service) error {
	botApp, err := tgbot.New(cfg, svc, log)
	if err != nil {
		return err
	}

	operator := alert.NewOperator(botApp, cfg.OperatorChatID, log)
	notifiers := alert.Multi{operator}
	sentryNotifier, err := alert.InitSentry(cfg.SentryDSN, version, log)
	if err != nil {
		return err
	}
	if sentryNotifier != nil {
		notifiers = append(notifiers, sentryNotifier)
		defer alert.FlushSentry()
	}
	botApp.SetAlerts(notifiers)

	httpSrv := server.New(cfg, svc, log, notifiers)

	// Start HTTP server
	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.Error(err))
		}
	}()

	// Start Telegram
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go runBot(ctx, cancel, botApp.Run, log)
	operator.Started(version)

	<-ctx.Done()
	log.Info("shutting down")

	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Info("bye")
	return nil
}

// runBot runs the update loop and ends the process once it returns, whatever
// the reason.
func runBot(ctx context.Context, stop context.CancelFunc, run func(context.Context) error, log *zap.Logger) {
	defer stop()
	err := run(ctx)
	switch {
	case err == nil:
		log.Warn("bot stopped: updates channel closed")
	case errors.Is(err, context.Canceled):
	default:
		log.Error("bot stopped", zap.Error(err))
	}
}
