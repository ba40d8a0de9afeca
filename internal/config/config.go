package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"regplace-bot/internal/codes"
	"regplace-bot/internal/regplace"
)

// ErrMissing marks a required setting that is absent. The process must not
// start serving without it.
var ErrMissing = errors.New("missing required setting")

const DefaultEventSlug = "uralhim-gonka-legkova"

type Config struct {
	TelegramToken  string
	OperatorChatID int64
	RegplaceToken  string

	RegplaceBaseURL string
	EventSlug       string
	RaceDistances   *codes.RaceTable
	HTTPTimeout     time.Duration // 0 means no client timeout

	HTTPAddr string

	LogLevel  string
	LogFormat string
	LogFile   string
	SentryDSN string
}

func FromEnv() (Config, error) {
	return Load("")
}

// Load reads environment variables and, if present, a regbot.yaml file (or
// the given file). Environment variables win.
func Load(file string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("regplace_base_url", regplace.DefaultBaseURL)
	v.SetDefault("event_slug", DefaultEventSlug)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("regbot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("config file: %w", err)
			}
		}
	}

	var c Config
	c.TelegramToken = strings.TrimSpace(v.GetString("bot_token"))
	c.RegplaceToken = strings.TrimSpace(v.GetString("regplace_token"))
	c.RegplaceBaseURL = strings.TrimRight(strings.TrimSpace(v.GetString("regplace_base_url")), "/")
	c.EventSlug = strings.TrimSpace(v.GetString("event_slug"))
	c.HTTPAddr = strings.TrimSpace(v.GetString("http_addr"))
	c.HTTPTimeout = v.GetDuration("http_timeout")
	c.LogLevel = strings.TrimSpace(v.GetString("log_level"))
	c.LogFormat = strings.TrimSpace(v.GetString("log_format"))
	c.LogFile = strings.TrimSpace(v.GetString("log_file"))
	c.SentryDSN = strings.TrimSpace(v.GetString("sentry_dsn"))

	if c.TelegramToken == "" {
		return c, fmt.Errorf("%w: BOT_TOKEN is empty", ErrMissing)
	}
	operator := strings.TrimSpace(v.GetString("my_telegram_id"))
	if operator == "" {
		return c, fmt.Errorf("%w: MY_TELEGRAM_ID is empty", ErrMissing)
	}
	id, err := strconv.ParseInt(operator, 10, 64)
	if err != nil {
		return c, fmt.Errorf("MY_TELEGRAM_ID: %w", err)
	}
	c.OperatorChatID = id
	if c.RegplaceToken == "" {
		return c, fmt.Errorf("%w: REGPLACE_TOKEN is empty", ErrMissing)
	}
	if c.EventSlug == "" {
		return c, fmt.Errorf("%w: EVENT_SLUG is empty", ErrMissing)
	}

	c.RaceDistances, err = raceTable(v.Get("race_distances"))
	if err != nil {
		return c, fmt.Errorf("RACE_DISTANCES: %w", err)
	}
	return c, nil
}

// raceTable accepts the env form "uuid=label,uuid=label" or a yaml mapping.
func raceTable(raw any) (*codes.RaceTable, error) {
	switch t := raw.(type) {
	case nil:
		return codes.NewRaceTable(nil)
	case string:
		return codes.ParseRaceTable(t)
	case map[string]any:
		m := make(map[string]string, len(t))
		for k, val := range t {
			m[k] = fmt.Sprint(val)
		}
		return codes.NewRaceTable(m)
	}
	return nil, fmt.Errorf("unsupported value %T", raw)
}
