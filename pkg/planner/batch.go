package planner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/1F47E/go-bombsight/pkg/units"
	"golang.org/x/sync/errgroup"
)

// DefaultTestAltitudes are the release heights, in feet, of the reference
// consistency table.
var DefaultTestAltitudes = []float64{0, 25, 50, 100, 200, 400, 500}

// FallObject parameterizes the closed-form fall time.
type FallObject struct {
	Mass            float64 `yaml:"mass"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
}

// FlourSack is the reference test object.
var FlourSack = FallObject{Mass: 0.22, DragCoefficient: 0.002}

// BatchRow compares both fall models at one altitude. The altitude columns
// feed each model's time back through the closed form.
type BatchRow struct {
	AltitudeFeet             float64
	TimeToImpact             float64
	FreeFallTime             float64
	AltitudeFromImpactFeet   float64
	AltitudeFromFreeFallFeet float64
	Err                      error
}

type BatchOptions struct {
	Workers int
	// FailFast aborts the batch on the first failing row instead of
	// recording the error on that row.
	FailFast bool
}

// Batch evaluates every altitude independently and in parallel. Rows keep the
// order of altitudesFeet.
func (p *Planner) Batch(ctx context.Context, altitudesFeet []float64, obj FallObject, opts BatchOptions) ([]BatchRow, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rows := make([]BatchRow, len(altitudesFeet))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, alt := range altitudesFeet {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = p.evaluate(alt, obj)
			if rows[i].Err != nil {
				p.logger.Warn("batch row failed", "altitude_ft", alt, "error", rows[i].Err)
				if opts.FailFast {
					return fmt.Errorf("altitude %v ft: %w", alt, rows[i].Err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *Planner) evaluate(altitudeFeet float64, obj FallObject) BatchRow {
	row := BatchRow{AltitudeFeet: altitudeFeet}
	meters := units.MetersFromFeet(altitudeFeet)

	var err error
	if row.TimeToImpact, err = p.impact.TimeToImpact(meters); err != nil {
		row.Err = err
		return row
	}
	if row.FreeFallTime, err = p.freeFall.FallTime(meters, obj.Mass, obj.DragCoefficient); err != nil {
		row.Err = err
		return row
	}

	fromImpact, err := p.freeFall.AltitudeFallen(row.TimeToImpact)
	if err != nil {
		row.Err = err
		return row
	}
	fromFreeFall, err := p.freeFall.AltitudeFallen(row.FreeFallTime)
	if err != nil {
		row.Err = err
		return row
	}
	row.AltitudeFromImpactFeet = units.FeetFromMeters(fromImpact)
	row.AltitudeFromFreeFallFeet = units.FeetFromMeters(fromFreeFall)
	return row
}
