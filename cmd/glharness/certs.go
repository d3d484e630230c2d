package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/pki"
	"pkt.systems/glharness/internal/seed"
	"pkt.systems/pslog"
)

func newCertsCmd() *cobra.Command {
	var cfgPath string
	var identities []string
	var hosts []string
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Provision the certificate authority and identity material",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			names := identities
			if len(names) == 0 {
				names = []string{cfg.Scheduler.Identity}
			}
			provisioner, err := pki.NewProvisioner(cfg.Harness.CertDir, cfg.Harness.KeyBundle, logger)
			if err != nil {
				return err
			}
			material, err := provisioner.Ensure(hosts, names...)
			if err != nil {
				return err
			}
			if _, err := seed.LoadOrGenerate(cfg.Harness.SeedFile, logger); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "cert_path=%s\n", material.Dir)
			_, _ = fmt.Fprintf(out, "ca_crt_path=%s\n", material.CACrtPath)
			ids := make([]string, 0, len(material.Identities))
			for name := range material.Identities {
				ids = append(ids, name)
			}
			sort.Strings(ids)
			for _, name := range ids {
				identity := material.Identities[name]
				_, _ = fmt.Fprintf(out, "%s_crt_path=%s\n", name, identity.CrtPath)
				_, _ = fmt.Fprintf(out, "%s_key_path=%s\n", name, identity.KeyPath)
			}
			logger.Info("certs ok", "dir", material.Dir, "identities", len(material.Identities))
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().StringSliceVar(&identities, "identity", nil, "identity names to provision")
	cmd.Flags().StringSliceVar(&hosts, "host", nil, "server certificate hosts")
	return cmd
}
