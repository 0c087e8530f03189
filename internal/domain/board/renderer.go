// Package board renders a dashboard's widget records into a widget.Container.
package board

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// DefaultConcurrency bounds simultaneous widget renders.
const DefaultConcurrency = 8

// Factory creates widgets from records. *registry.Registry satisfies it.
type Factory interface {
	CreateFromRecord(rec types.WidgetRecord) (widget.Widget, error)
}

// Renderer turns dashboards into containers of cards.
type Renderer struct {
	factory     Factory
	concurrency int
	logger      *logging.Logger
	metrics     *monitoring.Metrics
	tracer      *tracing.Tracer
}

// NewRenderer creates a renderer. concurrency < 1 uses DefaultConcurrency.
func NewRenderer(factory Factory, concurrency int, logger *logging.Logger) *Renderer {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Renderer{
		factory:     factory,
		concurrency: concurrency,
		logger:      logging.OrNop(logger).Named("board"),
	}
}

// WithMetrics adds metrics tracking to the renderer
func (r *Renderer) WithMetrics(metrics *monitoring.Metrics) *Renderer {
	r.metrics = metrics
	return r
}

// WithTracer opens a span per widget render.
func (r *Renderer) WithTracer(tracer *tracing.Tracer) *Renderer {
	r.tracer = tracer
	return r
}

// Render renders every widget of d and waits for all of them to settle.
func (r *Renderer) Render(ctx context.Context, d types.Dashboard) *widget.Container {
	c := widget.NewContainer()
	r.run(ctx, d, c)()
	return c
}

// Start begins rendering d into c and returns immediately. The returned
// function blocks until every widget has settled.
func (r *Renderer) Start(ctx context.Context, d types.Dashboard, c *widget.Container) (wait func()) {
	return r.run(ctx, d, c)
}

// Widgets instantiates the records of d, skipping records whose type is
// unknown. One bad record never blanks the board.
func (r *Renderer) Widgets(d types.Dashboard) []widget.Widget {
	out := make([]widget.Widget, 0, len(d.Widgets))
	for _, rec := range d.Widgets {
		w, err := r.factory.CreateFromRecord(rec)
		if err != nil {
			r.logger.Warn("Skipping widget",
				zap.String("dashboard_id", d.ID),
				zap.String("widget_id", rec.ID),
				zap.String("widget_type", string(rec.Type)),
				zap.Error(err))
			r.metrics.RecordWidgetRender(string(rec.Type), monitoring.OutcomeSkipped)
			continue
		}
		out = append(out, w)
	}
	return out
}

func (r *Renderer) run(ctx context.Context, d types.Dashboard, c *widget.Container) (wait func()) {
	widgets := r.Widgets(d)

	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = w.ID()
	}
	c.Reserve(ids...)

	// Widgets report failures on their own card; the group never errors.
	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)

	scheduled := make(chan struct{})
	go func() {
		defer close(scheduled)
		for _, w := range widgets {
			w := w
			g.Go(func() error {
				span, ctx := r.tracer.StartSpan(ctx, "widget.render")
				span.SetTag("widget.id", w.ID())
				span.SetTag("widget.type", string(w.Type()))

				var failure error
				defer func() {
					if p := recover(); p != nil {
						failure = fmt.Errorf("widget render panicked: %v", p)
						r.logger.Error("Widget render panicked",
							zap.String("widget_id", w.ID()),
							zap.Any("panic", p))
					}
					r.tracer.End(span, failure)
				}()
				w.Render(ctx, c)
				return nil
			})
		}
	}()

	return func() {
		<-scheduled
		_ = g.Wait()
	}
}
