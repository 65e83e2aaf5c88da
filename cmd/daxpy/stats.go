package main

import (
	"fmt"

	"github.com/example/go-daxpy/internal/gem5stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize per-CPU metrics from a gem5 stats.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if format != "text" && format != "json" {
				return fmt.Errorf("--format must be 'text' or 'json'")
			}

			if cfg.Stats.CPUs < 1 {
				return fmt.Errorf("stats.cpus must be at least 1, got %d", cfg.Stats.CPUs)
			}

			rep, err := gem5stats.ParseFile(cfg.Stats.Path, cfg.Stats.CPUs)
			if err != nil {
				return err
			}

			if format == "json" {
				return gem5stats.FormatJSON(rep, cmd.OutOrStdout())
			}
			gem5stats.FormatText(rep, cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")

	return cmd
}
