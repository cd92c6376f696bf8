package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gesture/internal/config"
	"github.com/Faultbox/midgard-gesture/internal/gesture"
	"github.com/Faultbox/midgard-gesture/internal/logger"
	"github.com/Faultbox/midgard-gesture/internal/scene"
	"github.com/Faultbox/midgard-gesture/internal/trace"
	"github.com/Faultbox/midgard-gesture/pkg/math"
)

func newReplayCmd() *cobra.Command {
	var (
		configPath string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "replay <trace.yaml>",
		Short: "Run a trace through the gesture detector and print the events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Gesture.Validate(); err != nil {
				return err
			}

			tr, err := trace.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("trace loaded",
				zap.String("path", args[0]),
				zap.Int("frames", len(tr.Frames)),
				zap.Duration("duration", tr.Duration()),
			)
			if len(tr.Frames) == 0 {
				logger.Warn("trace has no frames", zap.String("path", args[0]))
			}

			obj := scene.NewObject("model", math.Vec3{X: 1, Y: 1, Z: 1})
			m := gesture.NewManager(tr.Viewport, cfg.Gesture, gesture.WithLogger(logger.Named("gesture")))
			events, err := trace.Replay(tr, m, obj)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !quiet {
				for _, ev := range events {
					printEvent(cmd, ev)
				}
			}
			fmt.Fprintf(out, "%d events\n", len(events))
			fmt.Fprintln(out, obj)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file with gesture settings")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the final transform")

	return cmd
}

func printEvent(cmd *cobra.Command, ev gesture.Event) {
	out := cmd.OutOrStdout()
	switch ev.Phase {
	case gesture.PhaseMove:
		fmt.Fprintf(out, "%-16s pos=(%.4f, %.4f) d=(%.4f, %.4f)", ev.Name,
			ev.Centroid.X, ev.Centroid.Y, ev.PositionChange.X, ev.PositionChange.Y)
		if ev.HasSpreadChange {
			fmt.Fprintf(out, " spread=%.4f ds=%.4f", ev.Spread, ev.SpreadChange)
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "%-16s pos=(%.4f, %.4f) touches=%d\n", ev.Name,
			ev.Centroid.X, ev.Centroid.Y, ev.Count)
	}
}
