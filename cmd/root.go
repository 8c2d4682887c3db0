package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	timeout time.Duration
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "confect",
	Short: "Inspect resources and configuration trees",
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "abort after this long")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// cmdContext returns a context that ends on SIGINT, SIGTERM or the --timeout
// deadline.
func cmdContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func printValue(cmd *cobra.Command, v any) error {
	if asJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
