// Package cmd has the featsel command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/version"

	"go.tefs.dev/featsel/selection"
	"go.tefs.dev/featsel/tracefile"
)

// Cmd is the root of the command tree.
type Cmd struct {
	Threshold ThresholdCmd `cmd:"" help:"Select features with the threshold stopping rule"`
	Count     CountCmd     `cmd:"" help:"Select a fixed number of features"`
	Watch     WatchCmd     `cmd:"" help:"Re-run a selection whenever the trace file changes"`
	Version   VersionCmd   `cmd:"" help:"Print version and build information"`
}

// TraceFlags are shared by the one-shot selection commands.
type TraceFlags struct {
	Trace     string `arg:"" help:"Trace file (.json, .yaml or .yml)" type:"path"`
	Direction string `help:"Search direction, forward or backward (defaults to the trace file's)" env:"FEATSEL_DIRECTION"`
	Verbose   bool   `short:"v" help:"Log which stop condition fired"`

	Out io.Writer `kong:"-"`
}

func (tf *TraceFlags) stdout() io.Writer {
	if tf.Out != nil {
		return tf.Out
	}
	return os.Stdout
}

// setup loads the trace and resolves the direction from the flag or the
// file. With Verbose a debug logger is put on the returned context.
func (tf *TraceFlags) setup(ctx context.Context) (context.Context, *tracefile.File, selection.Direction, error) {
	ctx = verboseContext(ctx, tf.Verbose)

	f, err := tracefile.Load(ctx, tf.Trace)
	if err != nil {
		return ctx, nil, selection.DirectionUnspecified, fmt.Errorf("failed to load trace: %w", err)
	}

	dir := f.Direction
	if tf.Direction != "" {
		dir, err = selection.ParseDirection(tf.Direction)
		if err != nil {
			return ctx, nil, selection.DirectionUnspecified, err
		}
	}
	if dir == selection.DirectionUnspecified {
		return ctx, nil, dir, fmt.Errorf("%w: no direction given and %s does not name one", selection.ErrInvalidArgument, tf.Trace)
	}
	return ctx, f, dir, nil
}

// verboseContext puts a debug level stderr logger on ctx when verbose is set.
func verboseContext(ctx context.Context, verbose bool) context.Context {
	if !verbose {
		return ctx
	}
	debugHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return logger.NewContext(ctx, slog.New(debugHandler))
}

func (tf *TraceFlags) selector(m *selection.Metrics) *selection.Selector {
	return selection.New(
		selection.WithVerbose(tf.Verbose),
		selection.WithMetrics(m),
	)
}

type ThresholdCmd struct {
	TraceFlags `embed:""`

	Threshold *float64 `help:"Stop once the aggregate score is above this value (defaults to the trace file's)" env:"FEATSEL_THRESHOLD"`
}

func (cmd *ThresholdCmd) Run(ctx context.Context) error {
	ctx, f, dir, err := cmd.setup(ctx)
	if err != nil {
		return err
	}

	threshold, err := resolveThreshold(cmd.Threshold, f)
	if err != nil {
		return err
	}

	d, err := cmd.selector(nil).Threshold(ctx, f.Trace, threshold, dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.stdout(), d.Features.String())
	return err
}

type CountCmd struct {
	TraceFlags `embed:""`

	N int `short:"n" required:"" help:"Number of features to select"`
}

func (cmd *CountCmd) Run(ctx context.Context) error {
	ctx, f, dir, err := cmd.setup(ctx)
	if err != nil {
		return err
	}

	d, err := cmd.selector(nil).Count(ctx, f.Trace, cmd.N, dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.stdout(), d.Features.String())
	return err
}

type VersionCmd struct {
	Out io.Writer `kong:"-"`
}

func (cmd *VersionCmd) Run() error {
	w := cmd.Out
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "featsel %s\n", version.Version())
	return err
}

func resolveThreshold(flag *float64, f *tracefile.File) (float64, error) {
	if flag != nil {
		return *flag, nil
	}
	if f.Threshold != nil {
		return *f.Threshold, nil
	}
	return 0, fmt.Errorf("%w: no threshold given and %s does not carry one", selection.ErrInvalidArgument, f.Path)
}
