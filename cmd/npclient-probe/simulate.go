package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/srediag/plugin-npclient/pkg/freetrack"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

func (p *probe) simulateCmd() *cobra.Command {
	var (
		rate      float64
		duration  time.Duration
		amplitude float64
		countdown int32
		table     string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Publish a synthetic oscillating head pose",
		Long: `simulate plays the tracker: it publishes a slowly swaying pose for whatever
game the consumer registered, then disables the record on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate <= 0 {
				return fmt.Errorf("invalid rate %v", rate)
			}
			opts := []freetrack.PublisherOption{freetrack.WithCountdown(countdown)}
			if table != "" {
				t, err := parseTable(table)
				if err != nil {
					return err
				}
				opts = append(opts, freetrack.WithTable(t))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			region, err := shm.NewRegion(shm.Config{
				Name:     p.cfg.MappingName,
				LockName: p.cfg.MutexName,
				Size:     freetrack.StateSize,
				Create:   true,
				Mapper:   p.mapper,
			})
			if err != nil {
				return err
			}
			mem, err := region.Acquire(ctx)
			if err != nil {
				return err
			}
			defer region.Release(context.Background())

			pub, err := freetrack.NewPublisher(mem, opts...)
			if err != nil {
				return err
			}
			defer pub.Disable()

			interval := time.Duration(float64(time.Second) / rate)
			feeder := freetrack.NewFeeder(pub, 0)
			done := make(chan error, 1)
			go func() { done <- feeder.Run(ctx, interval) }()

			start := time.Now()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					<-done
					fmt.Fprintf(cmd.OutOrStdout(), "published=%d dropped=%d\n", feeder.Published(), feeder.Dropped())
					return nil
				case now := <-ticker.C:
					// Run disposes the feeder as soon as ctx ends
					if _, err := feeder.Offer(sway(now.Sub(start), amplitude)); err != nil && ctx.Err() == nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().Float64Var(&rate, "rate", 60, "samples per second")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long, 0 runs until interrupted")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0.5, "peak rotation in radians")
	cmd.Flags().Int32Var(&countdown, "countdown", freetrack.DefaultCountdown, "consumer polls each sample stays live for")
	cmd.Flags().StringVar(&table, "table", "", "obfuscation table as 16 hex digits")
	return cmd
}

// sway is a head slowly looking around: yaw and pitch on incommensurate
// periods with a matching lean in X.
func sway(t time.Duration, amplitude float64) freetrack.PoseSample {
	s := t.Seconds()
	yaw := amplitude * math.Sin(2*math.Pi*s/4)
	pitch := amplitude / 2 * math.Sin(2*math.Pi*s/7)
	return freetrack.PoseSample{
		Yaw:      float32(yaw),
		Pitch:    float32(pitch),
		X:        float32(40 * yaw),
		Z:        float32(10 * pitch),
		RawYaw:   float32(yaw),
		RawPitch: float32(pitch),
	}
}

func parseTable(s string) ([freetrack.TableSize]byte, error) {
	var t [freetrack.TableSize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return t, fmt.Errorf("table: %w", err)
	}
	if len(b) != freetrack.TableSize {
		return t, fmt.Errorf("table needs %d bytes, got %d", freetrack.TableSize, len(b))
	}
	copy(t[:], b)
	return t, nil
}
