package main

import (
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/chainrpc"
	"pkt.systems/glharness/internal/envfile"
	"pkt.systems/glharness/internal/schedulergrpc"
	"pkt.systems/pslog"
)

// newCheckCmd wires the diagnostics: descriptor present, scheduler
// reachable over mTLS, chain node answering RPC.
func newCheckCmd() *cobra.Command {
	var cfgPath string
	var skipChain bool
	var mineBlocks int64
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run environment diagnostics against a persisted descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			logger.Info("check start", "env_file", cfg.Harness.EnvFile)

			desc, err := envfile.Read(cfg.Harness.EnvFile)
			if err != nil {
				return err
			}
			logger.Info("check descriptor ok", "scheduler_grpc_uri", desc.SchedulerGRPCURI)

			client, err := schedulergrpc.Dial(cmd.Context(), schedulergrpc.Config{
				URI:         desc.SchedulerGRPCURI,
				CACrtPath:   desc.CACrtPath,
				CrtPath:     desc.NobodyCrtPath,
				KeyPath:     desc.NobodyKeyPath,
				CallTimeout: time.Duration(cfg.Harness.CallTimeoutSeconds) * time.Second,
			})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			version, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("check scheduler ok", "version", version)

			if skipChain {
				logger.Info("check ok", "chain", "skipped")
				return nil
			}
			chain, err := chainrpc.New(chainrpc.Config{
				URI:     desc.BitcoindRPCURI,
				Network: cfg.Bitcoind.Network,
			}, logger)
			if err != nil {
				return err
			}
			defer chain.Close()
			height, err := chain.BlockCount()
			if err != nil {
				return err
			}
			logger.Info("check chain ok", "height", height)

			if mineBlocks > 0 {
				addr, err := chain.NewAddress()
				if err != nil {
					return err
				}
				hashes, err := chain.MineToAddress(mineBlocks, addr)
				if err != nil {
					return err
				}
				if err := chain.WaitForHeight(cmd.Context(), height+int64(len(hashes))); err != nil {
					return err
				}
				logger.Info("check mine ok", "blocks", len(hashes), "address", addr)
			}
			logger.Info("check ok")
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().BoolVar(&skipChain, "skip-chain", false, "skip the chain RPC check")
	cmd.Flags().Int64Var(&mineBlocks, "mine", 0, "mine this many blocks after the chain check")
	return cmd
}
