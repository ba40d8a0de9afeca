package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"regplace-bot/internal/config"
	"regplace-bot/internal/heat"
	"regplace-bot/internal/logging"
	"regplace-bot/internal/lookup"
	"regplace-bot/internal/regplace"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "regbot",
		Short:   "Telegram bot for reg.place race registration stats",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, svc, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cfg, log, svc)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./regbot.yaml if present)")

	root.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Print the race statistics once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, svc, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			rep, err := svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			for _, w := range rep.Warnings {
				log.Warn("race summary", zap.Error(w))
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Text)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "heat <number>",
		Short: "Print one participant record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, svc, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			text, err := svc.Heat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	})
	return root
}

// setup loads configuration and wires the query pipeline. Missing credentials
// stop the process here, before anything is served.
func setup() (config.Config, *zap.Logger, *lookup.Service, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return cfg, nil, nil, err
	}
	if cfg.RaceDistances.Len() == 0 {
		log.Warn("RACE_DISTANCES is empty, every heat lookup will report an unmapped race")
	}

	api := regplace.New(cfg.RegplaceBaseURL, cfg.RegplaceToken, &http.Client{Timeout: cfg.HTTPTimeout})
	svc := lookup.New(api, cfg.EventSlug, heat.NewExtractor(cfg.RaceDistances))
	return cfg, log, svc, nil
}
