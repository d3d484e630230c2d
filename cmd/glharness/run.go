package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/glharness"
	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/pslog"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	var keepEnvironment bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision, launch and test the scheduler environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if keepEnvironment {
				cfg.Harness.KeepEnvironment = true
			}
			logger.Info("run start",
				"runtime", cfg.Runtime.Runtime,
				"scheduler_image", cfg.Scheduler.Image,
				"bitcoind_image", cfg.Bitcoind.Image,
				"env_file", cfg.Harness.EnvFile,
			)
			rt, closeFn, err := selectRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer func() { _ = closeFn() }()
			}
			harness, err := glharness.New(cfg, glharness.Deps{Runtime: rt})
			if err != nil {
				return err
			}
			if err := harness.Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info("run ok", "state", string(harness.State()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().BoolVar(&keepEnvironment, "keep", false, "leave containers running after the run")
	return cmd
}
