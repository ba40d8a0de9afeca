package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const race30 = "0b9d2b36-3c1a-4a51-9d4e-6f1f2c1f7a30"

func setRequired(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("BOT_TOKEN", "bot")
	t.Setenv("MY_TELEGRAM_ID", "12345")
	t.Setenv("REGPLACE_TOKEN", "reg")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("RACE_DISTANCES", race30+"=30 км")
	t.Setenv("HTTP_TIMEOUT", "15s")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "bot", c.TelegramToken)
	assert.Equal(t, int64(12345), c.OperatorChatID)
	assert.Equal(t, "reg", c.RegplaceToken)
	assert.Equal(t, "https://api.reg.place", c.RegplaceBaseURL)
	assert.Equal(t, DefaultEventSlug, c.EventSlug)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 15*time.Second, c.HTTPTimeout)
	assert.Equal(t, 1, c.RaceDistances.Len())
}

func TestFromEnv_Missing(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "MY_TELEGRAM_ID", "REGPLACE_TOKEN"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")
			_, err := FromEnv()
			assert.True(t, errors.Is(err, ErrMissing), "got %v", err)
		})
	}
}

func TestFromEnv_BadValues(t *testing.T) {
	setRequired(t)
	t.Setenv("MY_TELEGRAM_ID", "me")
	_, err := FromEnv()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("RACE_DISTANCES", "nope=30 км")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	setRequired(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "bot.yaml")
	yaml := "event_slug: other-race\nrace_distances:\n  " + race30 + ": 30 км\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o600))

	c, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "other-race", c.EventSlug)
	assert.Equal(t, []string{"30 км"}, c.RaceDistances.Labels())
}
