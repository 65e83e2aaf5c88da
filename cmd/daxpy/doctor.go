package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/example/go-daxpy/internal/config"
	"github.com/example/go-daxpy/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var checkStats bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local runtime and configuration checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Doctor reports invalid settings instead of refusing to start.
			cfg := activeCfg

			dcfg := doctor.Config{
				VectorLength: cfg.Vector.Length,
				Workers:      cfg.Runtime.Workers,
				Kernel:       cfg.Runtime.Kernel,
				ValidateKernel: func(name string) error {
					_, err := config.NormalizeKernel(name)
					return err
				},
				MaxProcs: func() int { return runtime.GOMAXPROCS(0) },
				Features: doctor.CPUFeatures,
			}
			if checkStats {
				dcfg.StatsFile = cfg.Stats.Path
			}

			result := doctor.Run(dcfg, cmd.OutOrStdout())
			if result.Failed() {
				return fmt.Errorf("doctor found %d problem(s): %s",
					len(result.Failures()), strings.Join(result.Failures(), "; "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkStats, "check-stats", false, "Also verify that the gem5 stats file exists")

	return cmd
}
