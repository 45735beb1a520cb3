package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/metricsserver"
	"go.ntppool.org/common/version"
	"golang.org/x/sync/errgroup"

	"go.tefs.dev/featsel/selection"
	"go.tefs.dev/featsel/tracefile"
)

type WatchCmd struct {
	Trace     string   `arg:"" help:"Trace file (.json, .yaml or .yml)" type:"path"`
	Direction string   `help:"Search direction, forward or backward (defaults to the trace file's)" env:"FEATSEL_DIRECTION"`
	Threshold *float64 `help:"Use the threshold rule with this value" env:"FEATSEL_THRESHOLD" xor:"policy"`
	N         int      `short:"n" help:"Use the count rule with this many features" xor:"policy"`
	Verbose   bool     `short:"v" help:"Log which stop condition fired"`

	MetricsPort    int           `default:"9000" help:"Metrics server port, 0 to disable" env:"FEATSEL_METRICS_PORT"`
	ReloadInterval time.Duration `default:"5m" help:"Reload the trace at least this often"`
	StartupTimeout time.Duration `default:"0s" help:"Give up if the trace file does not appear in time, 0 waits forever"`
}

func (cmd *WatchCmd) Run(ctx context.Context) error {
	ctx = verboseContext(ctx, cmd.Verbose)
	log := logger.FromContext(ctx)

	log.InfoContext(ctx, "featsel watcher starting", "version", version.Version(), "trace", cmd.Trace)

	if cmd.Threshold == nil && cmd.N == 0 {
		return fmt.Errorf("%w: one of --threshold or --n is required", selection.ErrInvalidArgument)
	}

	var dirFlag selection.Direction
	if cmd.Direction != "" {
		var err error
		dirFlag, err = selection.ParseDirection(cmd.Direction)
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	var metrics *selection.Metrics
	if cmd.MetricsPort > 0 {
		metricssrv := metricsserver.New()
		version.RegisterMetric("featsel", metricssrv.Registry())
		metrics = selection.NewMetrics(metricssrv.Registry())

		g.Go(func() error {
			return metricssrv.ListenAndServe(ctx, cmd.MetricsPort)
		})
	}

	sl := selection.New(selection.WithVerbose(cmd.Verbose), selection.WithMetrics(metrics))

	w := &tracefile.Watcher{
		Path:           cmd.Trace,
		ReloadInterval: cmd.ReloadInterval,
		StartupTimeout: cmd.StartupTimeout,
	}

	g.Go(func() error {
		return w.Run(ctx, func(ctx context.Context, id ulid.ULID, f *tracefile.File) {
			_, _ = cmd.evaluate(ctx, sl, dirFlag, f)
		})
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// evaluate runs the configured rule against f and logs the outcome. Without
// a threshold the count rule runs, so an out of range n gets its error.
func (cmd *WatchCmd) evaluate(ctx context.Context, sl *selection.Selector, dirFlag selection.Direction, f *tracefile.File) (selection.Decision, error) {
	log := logger.FromContext(ctx)

	dir := dirFlag
	if dir == selection.DirectionUnspecified {
		dir = f.Direction
	}

	var d selection.Decision
	var err error

	if cmd.Threshold != nil {
		d, err = sl.Threshold(ctx, f.Trace, *cmd.Threshold, dir)
	} else {
		d, err = sl.Count(ctx, f.Trace, cmd.N, dir)
	}
	if err != nil {
		log.WarnContext(ctx, "selection failed", "path", f.Path, "err", err)
		return d, err
	}

	log.InfoContext(ctx, "selection",
		"path", f.Path,
		"policy", d.Policy,
		"direction", d.Direction,
		"reason", d.Reason,
		"iteration", d.Iteration,
		"features", d.Features.String(),
	)
	return d, nil
}
