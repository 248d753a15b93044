package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/bankstatement/internal/adapter/idgen"
	"github.com/iho/bankstatement/internal/adapter/printer"
	"github.com/iho/bankstatement/internal/adapter/script"
	"github.com/iho/bankstatement/internal/domain"
	"github.com/iho/bankstatement/internal/infrastructure/clock"
	"github.com/iho/bankstatement/internal/infrastructure/logger"
	"github.com/iho/bankstatement/internal/usecase"
)

const demoScript = `# deposit 1000 on 10-01-2012, 2000 on 13-01-2012, withdraw 500 on 14-01-2012
2012-01-10 deposit 1000
2012-01-13 deposit 2000
2012-01-14 withdraw 500
print
`

var (
	baseURL   string
	timeout   time.Duration
	logLevel  string
	logFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bank",
		Short:         "Single account bank ledger",
		Long:          `Replays deposit and withdrawal scripts against an in-memory account and prints its statement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(runCmd(), demoCmd(), statementCmd(), consistencyCmd())

	return rootCmd
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{Level: logLevel, Format: logFormat, Output: cmd.ErrOrStderr()})
}

func runCmd() *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Replay a transaction script (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return runScript(cmd.Context(), cmd, in, failFast)
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first rejected transaction")

	return cmd
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the reference deposit/withdraw scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), cmd, strings.NewReader(demoScript), true)
		},
	}
}

// runScript replays a script against a fresh account. Statements go to the
// command's stdout; rejections are logged to stderr.
func runScript(ctx context.Context, cmd *cobra.Command, in io.Reader, failFast bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(cmd)

	cmds, err := script.Parse(in)
	if err != nil {
		return err
	}

	clk := clock.NewManual(time.Now())
	account := usecase.NewAccountUseCase(
		domain.NewLedger(),
		clk,
		printer.NewLineWriter(cmd.OutOrStdout()),
		idgen.NewULIDGenerator(),
		nil,
		log,
	)

	runner := script.NewRunner(account, clk)
	runner.FailFast = failFast
	runner.OnError = func(c script.Command, err error) {
		log.Warn().
			Err(err).
			Int("line", c.Line).
			Str("op", string(c.Op)).
			Int64("amount", c.Amount).
			Msg("transaction rejected")
	}

	sum, err := runner.Run(ctx, cmds)
	if err != nil {
		return err
	}

	log.Info().
		Int("posted", sum.Posted).
		Int("rejected", sum.Rejected).
		Int64("balance", account.Balance(ctx)).
		Msg("script completed")

	return nil
}

func statementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Print the statement of a running bank server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := get(baseURL + "/api/v1/account/statement")
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("statement request failed (status %d): %s", status, body)
			}

			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	addServerFlags(cmd)

	return cmd
}

func consistencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency of a running bank server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := get(baseURL + "/api/v1/account/consistency")
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if status != http.StatusOK {
				return fmt.Errorf("consistency check FAILED (status %d): %v", status, result["status"])
			}

			fmt.Fprintf(out, "Consistency check PASSED\n")
			if consistent, ok := result["consistent"].(bool); ok {
				fmt.Fprintf(out, "Consistent: %v\n", consistent)
			}
			fmt.Fprintf(out, "Status: %s\n", result["status"])

			return nil
		},
	}
	addServerFlags(cmd)

	return cmd
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bank server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
}

func get(url string) ([]byte, int, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}
