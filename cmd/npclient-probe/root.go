package main

import (
	"github.com/spf13/cobra"

	"github.com/srediag/plugin-npclient/internal/debug"
	"github.com/srediag/plugin-npclient/pkg/npclient"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

// probe is the state shared by every subcommand.
type probe struct {
	// mapper attaches segments; nil uses the operating system.
	mapper shm.Mapper

	cfg       *npclient.Config
	shmName   string
	mutexName string
	logLevel  int
}

func newRootCmd(mapper shm.Mapper) *cobra.Command {
	p := &probe{mapper: mapper}
	root := &cobra.Command{
		Use:   "npclient-probe",
		Short: "Inspect and exercise the shared head tracking record",
		Long: `npclient-probe talks to the shared pose record the way a game does through
the legacy head tracker client, or publishes into it the way a tracker does.
Names default to the NPCLIENT_* environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := npclient.LoadConfig()
			if err != nil {
				return err
			}
			if p.shmName != "" {
				cfg.MappingName = p.shmName
			}
			if p.mutexName != "" {
				cfg.MutexName = p.mutexName
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = p.logLevel
			}
			if err := npclient.VerifyConfig(cfg); err != nil {
				return err
			}
			p.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&p.shmName, "shm-name", "", "shared segment name (default $NPCLIENT_SHM_NAME or FT_SharedMem)")
	root.PersistentFlags().StringVar(&p.mutexName, "mutex-name", "", "lock name (default $NPCLIENT_MUTEX_NAME or FT_Mutext)")
	root.PersistentFlags().IntVar(&p.logLevel, "log-level", debug.LevelWarn, "diagnostic level, 0 trace to 5 silent")

	root.AddCommand(p.pollCmd(), p.dumpCmd(), p.simulateCmd())
	return root
}

func (p *probe) bridgeOptions(opts ...npclient.Option) []npclient.Option {
	if p.mapper != nil {
		opts = append(opts, npclient.WithMapper(p.mapper))
	}
	return opts
}
