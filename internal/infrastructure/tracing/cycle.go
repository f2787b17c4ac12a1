package tracing

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/id"
)

// CycleTracer is a display sink that traces crossing cycles. A trace opens
// when the crossing flag is first rendered true, gets one child span per
// phase entered while crossing, and closes on the first render with the flag
// cleared.
type CycleTracer struct {
	tracer *Tracer

	mu    sync.Mutex
	ctx   context.Context
	cycle *Span
	phase *Span
	count int
}

// NewCycleTracer creates a cycle tracer submitting to tracer
func NewCycleTracer(tracer *Tracer) *CycleTracer {
	return &CycleTracer{tracer: tracer}
}

// Render implements the display sink
func (ct *CycleTracer) Render(v crossing.VehiclePhase, _ crossing.PedestrianPhase, crossingActive bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.endPhase()

	switch {
	case crossingActive && ct.cycle == nil:
		ct.count++
		ctx := WithTraceID(context.Background(), TraceID(id.NewCycleID()))
		ct.cycle, ct.ctx = ct.tracer.StartSpan(ctx, "crossing_cycle")
		ct.startPhase(v)

	case crossingActive:
		ct.startPhase(v)

	case ct.cycle != nil:
		ct.cycle.SetTag("resumed_at", v.String())
		ct.cycle.Finish()
		ct.tracer.Submit(ct.cycle)
		ct.cycle, ct.ctx = nil, nil
	}
}

// Cycles returns how many crossing cycles have been opened
func (ct *CycleTracer) Cycles() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.count
}

func (ct *CycleTracer) startPhase(v crossing.VehiclePhase) {
	ct.phase, _ = ct.tracer.StartSpan(ct.ctx, v.String())
	ct.phase.SetTag("pedestrian", v.Pedestrian().String())
}

func (ct *CycleTracer) endPhase() {
	if ct.phase == nil {
		return
	}
	ct.phase.Finish()
	ct.tracer.Submit(ct.phase)
	ct.phase = nil
}
