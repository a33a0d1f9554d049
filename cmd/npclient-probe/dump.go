package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalshm "github.com/srediag/plugin-npclient/internal/shm"
	"github.com/srediag/plugin-npclient/pkg/freetrack"
)

func (p *probe) dumpCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the shared record without touching it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				path, err = internalshm.SegmentPath(p.cfg.MappingName)
				if err != nil {
					return fmt.Errorf("segment %s: %w, pass --path", p.cfg.MappingName, err)
				}
			}
			return freetrack.DebugStateDetail(cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "segment file (default /dev/shm/<shm-name> on Linux)")
	return cmd
}
