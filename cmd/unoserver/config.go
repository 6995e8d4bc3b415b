package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	host          string
	port          int
	minPlayers    int
	maxPlayers    int
	acceptTimeout time.Duration
	turnTimeout   time.Duration
	webAddr       string
	logFile       string
	verbose       bool
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("UNO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "unoserver",
		Short: "A TCP UNO session server speaking newline-delimited JSON.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.host, "host", "", "address to listen on, empty for all interfaces (env: UNO_HOST)")
	fs.IntVarP(&cfg.port, "port", "p", 10000, "port to listen on (env: UNO_PORT)")
	fs.IntVar(&cfg.minPlayers, "min-players", 2, "seats required before the game starts (env: UNO_MIN_PLAYERS)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 6, "seat ceiling (env: UNO_MAX_PLAYERS)")
	fs.DurationVar(&cfg.acceptTimeout, "accept-timeout", 60*time.Second, "how long to wait for players (env: UNO_ACCEPT_TIMEOUT)")
	fs.DurationVar(&cfg.turnTimeout, "turn-timeout", 60*time.Second, "per-turn action deadline (env: UNO_TURN_TIMEOUT)")
	fs.StringVar(&cfg.webAddr, "web-addr", "", "spectator/ops listen address, empty to disable (env: UNO_WEB_ADDR)")
	fs.StringVar(&cfg.logFile, "log-file", "", "log file path with rolling, empty for stderr (env: UNO_LOG_FILE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging (env: UNO_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
