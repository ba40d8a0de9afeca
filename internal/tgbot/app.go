package tgbot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"regplace-bot/internal/alert"
	"regplace-bot/internal/config"
	"regplace-bot/internal/report"
	"regplace-bot/internal/summary"
)

const (
	LabelRace    = "Race statistic"
	LabelAthlete = "Athlete info"
)

// Queries is what the bot asks for; lookup.Service implements it.
type Queries interface {
	Summary(ctx context.Context) (summary.Report, error)
	Heat(ctx context.Context, input string) (string, error)
}

type App struct {
	cfg    config.Config
	bot    *tgbotapi.BotAPI
	q      Queries
	alerts alert.Notifier
	log    *zap.Logger
}

func New(cfg config.Config, q Queries, log *zap.Logger) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &App{
		cfg:    cfg,
		bot:    b,
		q:      q,
		alerts: alert.Multi{},
		log:    log,
	}, nil
}

// SetAlerts installs the operator notifier. The operator notifier itself
// sends through the App, hence the setter.
func (a *App) SetAlerts(n alert.Notifier) {
	a.alerts = n
}

// Run handles updates one at a time until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	defer a.bot.StopReceivingUpdates()

	a.log.Info("bot started", zap.String("username", a.bot.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			if err := a.handleMessage(ctx, upd.Message); err != nil {
				a.log.Error("send reply", zap.Int64("chat_id", upd.Message.Chat.ID), zap.Error(err))
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	// From is empty for channel posts.
	a.log.Debug("message", zap.Int64("chat_id", m.Chat.ID), zap.String("text", m.Text))

	msg := tgbotapi.NewMessage(m.Chat.ID, a.Reply(ctx, m.Text))
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelRace),
			tgbotapi.NewKeyboardButton(LabelAthlete),
		),
	)
	_, err := a.bot.Send(msg)
	return err
}

// Reply produces the one answer for an inbound text. Failures are logged here
// and turned into a user message; nothing is returned as an error.
func (a *App) Reply(ctx context.Context, text string) string {
	txt := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(txt, "/start"), txt == LabelRace:
		return a.raceSummary(ctx)
	case txt == LabelAthlete:
		return "Введите номер заявки:"
	}
	return a.heatInfo(ctx, txt)
}

func (a *App) raceSummary(ctx context.Context) string {
	rep, err := a.q.Summary(ctx)
	if err != nil {
		return a.fail("race summary", err)
	}
	report.Warnings(a.log, a.alerts, "race summary", rep.Warnings)
	return rep.Text
}

func (a *App) heatInfo(ctx context.Context, input string) string {
	text, err := a.q.Heat(ctx, input)
	if err != nil {
		return a.fail("heat lookup", err)
	}
	return text
}
