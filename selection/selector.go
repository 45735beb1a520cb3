package selection

import (
	"context"
	"log/slog"

	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Selector runs the selection policies with progress logging, metrics and
// tracing. The zero value is not usable; create one with New. A Selector has
// no mutable state and may be shared between goroutines.
type Selector struct {
	log     *slog.Logger
	verbose bool
	metrics *Metrics
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for progress lines. Without it the logger
// is taken from the context of each call.
func WithLogger(log *slog.Logger) Option {
	return func(sl *Selector) {
		sl.log = log
	}
}

// WithVerbose enables progress lines describing which stop condition fired.
func WithVerbose(verbose bool) Option {
	return func(sl *Selector) {
		sl.verbose = verbose
	}
}

// WithMetrics records every selection in m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(sl *Selector) {
		sl.metrics = m
	}
}

// New creates a Selector.
func New(opts ...Option) *Selector {
	sl := &Selector{}
	for _, o := range opts {
		o(sl)
	}
	return sl
}

// Threshold runs ExplainThreshold.
func (sl *Selector) Threshold(ctx context.Context, tr Trace, threshold float64, dir Direction, opts ...ScanOption) (Decision, error) {
	ctx, span := tracing.Start(ctx, "selection.Threshold")
	defer span.End()

	span.SetAttributes(
		attribute.String("direction", dir.String()),
		attribute.Float64("threshold", threshold),
		attribute.Int("iterations", len(tr)),
	)

	opts = append(opts[:len(opts):len(opts)], withProgress(sl.progress(ctx)))
	d, err := ExplainThreshold(tr, threshold, dir, opts...)
	sl.observe(ctx, span, PolicyThreshold, dir, len(tr), d, err)
	return d, err
}

// Count runs ExplainCount.
func (sl *Selector) Count(ctx context.Context, tr Trace, n int, dir Direction, opts ...ScanOption) (Decision, error) {
	ctx, span := tracing.Start(ctx, "selection.Count")
	defer span.End()

	span.SetAttributes(
		attribute.String("direction", dir.String()),
		attribute.Int("n", n),
		attribute.Int("iterations", len(tr)),
	)

	opts = append(opts[:len(opts):len(opts)], withProgress(sl.progress(ctx)))
	d, err := ExplainCount(tr, n, dir, opts...)
	sl.observe(ctx, span, PolicyCount, dir, len(tr), d, err)
	return d, err
}

func (sl *Selector) logger(ctx context.Context) *slog.Logger {
	if sl.log != nil {
		return sl.log
	}
	return logger.FromContext(ctx)
}

func (sl *Selector) progress(ctx context.Context) func(string, ...any) {
	if !sl.verbose {
		return nil
	}
	log := sl.logger(ctx)
	return func(msg string, args ...any) {
		log.InfoContext(ctx, msg, args...)
	}
}

func (sl *Selector) observe(ctx context.Context, span trace.Span, p Policy, dir Direction, iterations int, d Decision, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		sl.logger(ctx).DebugContext(ctx, "selection failed", "policy", p, "direction", dir, "err", err)
		sl.metrics.TrackError(p, err)
		return
	}

	span.SetAttributes(
		attribute.String("reason", d.Reason.String()),
		attribute.Int("selected", d.Features.Len()),
		attribute.Int("stop_iteration", d.Iteration),
	)
	if sl.verbose {
		sl.logger(ctx).InfoContext(ctx, "selected features",
			"policy", p,
			"direction", dir,
			"reason", d.Reason,
			"iteration", d.Iteration,
			"features", d.Features.String(),
		)
	}
	sl.metrics.TrackDecision(d, iterations)
}
