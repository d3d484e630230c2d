package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/pki"
	"pkt.systems/glharness/internal/schedulergrpc"
	"pkt.systems/glharness/internal/version"
	"pkt.systems/pslog"
)

// newMockSchedulerCmd serves a scheduler stand-in with the harness CA,
// mostly useful for developing against the client without containers.
func newMockSchedulerCmd() *cobra.Command {
	var cfgPath string
	var addr string
	var nodeURI string
	cmd := &cobra.Command{
		Use:   "mock-scheduler",
		Short: "Serve a mock scheduler over mutual TLS",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			provisioner, err := pki.NewProvisioner(cfg.Harness.CertDir, cfg.Harness.KeyBundle, logger)
			if err != nil {
				return err
			}
			material, err := provisioner.Ensure(nil, cfg.Scheduler.Identity)
			if err != nil {
				return err
			}
			tlsCfg, err := schedulergrpc.ServerTLS(material.CACrtPath, material.ServerCrtPath, material.ServerKeyPath)
			if err != nil {
				return err
			}
			if nodeURI == "" {
				nodeURI = cfg.Scheduler.NodeGRPCURI
			}
			mock := schedulergrpc.NewMockScheduler(provisioner, version.Current(), nodeURI, logger)
			logger.Info("mock scheduler start", "addr", addr, "node_grpc_uri", nodeURI)
			return mock.ListenAndServe(cmd.Context(), addr, tlsCfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:2601", "listen address")
	cmd.Flags().StringVar(&nodeURI, "node-grpc-uri", "", "node endpoint handed out on Schedule")
	return cmd
}
