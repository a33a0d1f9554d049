package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/srediag/plugin-npclient/adapter"
	"github.com/srediag/plugin-npclient/pkg/npclient"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

func (p *probe) pollCmd() *cobra.Command {
	var (
		gameID uint16
		rate   float64
		count  int
		wait   time.Duration
		listen string
	)
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Register a game id and print the packets the bridge serves",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate <= 0 {
				return fmt.Errorf("invalid rate %v", rate)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			reg := prometheus.NewRegistry()
			b, err := npclient.NewBridge(p.cfg, p.bridgeOptions(npclient.WithMetrics(npclient.NewMetrics(reg)))...)
			if err != nil {
				return err
			}
			defer b.Close(context.Background())

			if listen != "" {
				health := adapter.NewHealthAdapter(b, adapter.WithHealthMetrics(reg, "npclient"))
				srv := &http.Server{
					Addr:              listen,
					Handler:           adapter.NewServeMux(health, adapter.NewMetricsAdapter(reg)),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						fmt.Fprintln(cmd.ErrOrStderr(), "http:", err)
					}
				}()
				defer srv.Shutdown(context.Background())
			}

			if !b.RegisterProgramProfileID(ctx, gameID) {
				return fmt.Errorf("register game %d: %w", gameID, shm.ErrMappingUnavailable)
			}

			out := cmd.OutOrStdout()
			polled := 0
			if wait > 0 {
				bo := backoff.NewExponentialBackOff()
				bo.MaxElapsedTime = wait
				pkt, err := b.WaitRunning(ctx, bo)
				if err != nil {
					return err
				}
				printPacket(out, pkt)
				polled++
			}

			ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
			defer ticker.Stop()
			for count <= 0 || polled < count {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
				pkt, _ := b.GetData(ctx)
				printPacket(out, pkt)
				polled++
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&gameID, "id", 1, "game profile id to register")
	cmd.Flags().Float64Var(&rate, "rate", 60, "polls per second")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many packets, 0 polls until interrupted")
	cmd.Flags().DurationVar(&wait, "wait", 0, "wait up to this long for the producer before polling")
	cmd.Flags().StringVar(&listen, "listen", "", "serve /live, /ready and /metrics on this address")
	return cmd
}

func printPacket(w io.Writer, pkt npclient.Packet) {
	fmt.Fprintf(w, "frame=%d status=%s yaw=%.1f pitch=%.1f roll=%.1f x=%.1f y=%.1f z=%.1f checksum=%08x enc=%t\n",
		pkt.Frame, pkt.Status, pkt.Yaw, pkt.Pitch, pkt.Roll, pkt.TX, pkt.TY, pkt.TZ, pkt.Checksum, pkt.Obfuscated)
}
