package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-contract/internal"
	"github.com/rocketscienceinc/tictactoe-contract/internal/config"
	"github.com/rocketscienceinc/tictactoe-contract/internal/contract"
	"github.com/spf13/cobra"
)

var sender string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP host",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := config.MustLoad(configPath)

		if err := app.RunApp(initLogger(conf), conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute ACTION PAYLOAD",
	Short: "Run one execute message on behalf of --sender",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(cmd, func(host *contract.Contract) (any, error) {
			return host.Execute(cmd.Context(), sender, contract.Message{Action: args[0], Payload: json.RawMessage(args[1])})
		})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query ACTION [PAYLOAD]",
	Short: "Run one query message",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := contract.Message{Action: args[0]}
		if len(args) == 2 {
			msg.Payload = json.RawMessage(args[1])
		}

		return withContract(cmd, func(host *contract.Contract) (any, error) {
			return host.Query(cmd.Context(), msg)
		})
	},
}

func init() {
	executeCmd.Flags().StringVar(&sender, "sender", "", "identity of the caller")
	_ = executeCmd.MarkFlagRequired("sender")
}

// withContract - opens the configured storage for a single invocation and prints its result as JSON.
func withContract(cmd *cobra.Command, invoke func(host *contract.Contract) (any, error)) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// keep stdout for the result
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	host, closeStorage, err := app.NewContract(cmd.Context(), logger, conf)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			logger.Error("could not close storage", "error", closeErr)
		}
	}()

	result, err := invoke(host)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
