package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
	"github.com/Faultbox/midgard-gesture/internal/trace"
)

type synthFlags struct {
	width, height float64
	steps         int
	interval      time.Duration
	output        string
}

func (f *synthFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&f.height, "height", 720, "viewport height")
	cmd.Flags().IntVar(&f.steps, "steps", 10, "number of move frames")
	cmd.Flags().DurationVar(&f.interval, "interval", 16*time.Millisecond, "time between frames")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the trace to a file instead of stdout")
}

func (f *synthFlags) viewport() (gesture.Viewport, error) {
	vp := gesture.Viewport{Width: f.width, Height: f.height}
	if err := vp.Validate(); err != nil {
		return vp, err
	}
	return vp, nil
}

func (f *synthFlags) write(cmd *cobra.Command, tr *trace.Trace) error {
	if f.output == "" {
		return tr.Encode(cmd.OutOrStdout())
	}
	if err := tr.Save(f.output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d frames to %s\n", len(tr.Frames), f.output)
	return nil
}

func parsePoint(name string, v []float64) (gesture.TouchPoint, error) {
	if len(v) != 2 {
		return gesture.TouchPoint{}, fmt.Errorf("--%s needs x,y, got %d values", name, len(v))
	}
	return gesture.TouchPoint{X: v[0], Y: v[1]}, nil
}

func newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate synthetic traces",
	}
	cmd.AddCommand(newSynthDragCmd())
	cmd.AddCommand(newSynthPinchCmd())
	return cmd
}

func newSynthDragCmd() *cobra.Command {
	var (
		flags    synthFlags
		from, to []float64
	)

	cmd := &cobra.Command{
		Use:   "drag",
		Short: "One finger moving in a straight line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := flags.viewport()
			if err != nil {
				return err
			}
			start, err := parsePoint("from", from)
			if err != nil {
				return err
			}
			end, err := parsePoint("to", to)
			if err != nil {
				return err
			}
			return flags.write(cmd, trace.Drag(vp, start, end, flags.steps, flags.interval))
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&from, "from", []float64{540, 360}, "start point x,y")
	cmd.Flags().Float64SliceVar(&to, "to", []float64{740, 360}, "end point x,y")

	return cmd
}

func newSynthPinchCmd() *cobra.Command {
	var (
		flags                synthFlags
		center               []float64
		fromRadius, toRadius float64
	)

	cmd := &cobra.Command{
		Use:   "pinch",
		Short: "Two fingers moving apart or together around a center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := flags.viewport()
			if err != nil {
				return err
			}
			c, err := parsePoint("center", center)
			if err != nil {
				return err
			}
			if fromRadius <= 0 || toRadius <= 0 {
				return fmt.Errorf("radii must be positive, got %v and %v", fromRadius, toRadius)
			}
			return flags.write(cmd, trace.Pinch(vp, c, fromRadius, toRadius, flags.steps, flags.interval))
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&center, "center", []float64{640, 360}, "pinch center x,y")
	cmd.Flags().Float64Var(&fromRadius, "from-radius", 50, "initial finger distance from the center")
	cmd.Flags().Float64Var(&toRadius, "to-radius", 150, "final finger distance from the center")

	return cmd
}
