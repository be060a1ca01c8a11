package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-contract/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe sessions between pairs of players",
	Long: `tictactoe keeps invitation and game sessions between (host, guest) pairs.

  tictactoe serve                                         Start the HTTP host
  tictactoe execute --sender alice invite '{"guest":"bob"}'  Run one state change
  tictactoe query all_games_list                          Read sessions`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.yml", "path to the config file")

	rootCmd.AddCommand(serveCmd, executeCmd, queryCmd)
}

// main - is the entry point of the application. It dispatches to the serve, execute and query commands.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
