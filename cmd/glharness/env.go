package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/envfile"
	"pkt.systems/glharness/schema"
	"pkt.systems/pslog"
)

func newEnvCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the persisted environment descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			desc, err := envfile.Read(cfg.Harness.EnvFile)
			if err != nil {
				pslog.Ctx(cmd.Context()).Warn("env read failed", "path", cfg.Harness.EnvFile, "err", err)
				return err
			}
			out := cmd.OutOrStdout()
			for _, field := range schema.DescriptorFields {
				value, _ := desc.Get(field)
				_, _ = fmt.Fprintf(out, "%s=%s\n", field, value)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	return cmd
}
