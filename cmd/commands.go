package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/1F47E/go-bombsight/pkg/planner"
	"github.com/1F47E/go-bombsight/pkg/units"
	"github.com/spf13/cobra"
)

var (
	batchAltitudes []float64
	batchMass      float64
	batchDrag      float64
	failFast       bool

	altitudeFeet   float64
	groundSpeedMPH float64
	fromLat        float64
	fromLon        float64
	toLat          float64
	toLon          float64
	targetID       string
	trace          bool
	outputJSON     bool

	nearestCount int
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare the simulator and the closed-form fall over a table of altitudes",
		Long: `For each test altitude print the simulated time to impact, the closed-form
free fall time, and the altitude recovered from each time.`,
		RunE: runBatch,
	}
	cmd.Flags().Float64SliceVarP(&batchAltitudes, "altitudes", "a", nil, "Test altitudes in feet")
	cmd.Flags().Float64Var(&batchMass, "mass", planner.FlourSack.Mass, "Object mass for the closed-form fall time")
	cmd.Flags().Float64Var(&batchDrag, "drag", planner.FlourSack.DragCoefficient, "Object drag coefficient for the closed-form fall time")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing altitude")
	return cmd
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a release over a target",
		RunE:  runPlan,
	}
	positionFlags(cmd)
	cmd.Flags().Float64Var(&toLat, "to-lat", 0, "Target latitude")
	cmd.Flags().Float64Var(&toLon, "to-lon", 0, "Target longitude")
	cmd.Flags().StringVarP(&targetID, "target", "t", "", "Catalog target id")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every simulator step for the release altitude")
	return cmd
}

func newNearestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Plan releases over the catalog targets closest to a position",
		RunE:  runNearest,
	}
	positionFlags(cmd)
	cmd.Flags().IntVarP(&nearestCount, "count", "n", 1, "Number of targets")
	return cmd
}

func positionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&altitudeFeet, "altitude", 0, "Release altitude in feet AGL")
	cmd.Flags().Float64Var(&groundSpeedMPH, "speed", 0, "Ground speed in mph")
	cmd.Flags().Float64Var(&fromLat, "lat", 0, "Current latitude")
	cmd.Flags().Float64Var(&fromLon, "lon", 0, "Current longitude")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output solutions as JSON")
}

func runBatch(cmd *cobra.Command, args []string) error {
	altitudes := env.cfg.Batch.AltitudesFeet
	if cmd.Flags().Changed("altitudes") {
		altitudes = batchAltitudes
	}
	obj := env.cfg.Batch.Object
	if cmd.Flags().Changed("mass") {
		obj.Mass = batchMass
	}
	if cmd.Flags().Changed("drag") {
		obj.DragCoefficient = batchDrag
	}

	env.logger.Info("running batch", "altitudes", len(altitudes), "mass", obj.Mass, "drag", obj.DragCoefficient)
	rows, err := env.planner.Batch(cmd.Context(), altitudes, obj, planner.BatchOptions{
		Workers:  env.cfg.Simulation.Workers,
		FailFast: failFast,
	})
	if err != nil {
		return err
	}
	env.report.WriteBatch(rows)
	return nil
}

// scenarioRequest applies command line overrides to the configured scenario.
func scenarioRequest(cmd *cobra.Command) (planner.Request, error) {
	sc := env.cfg.Scenario
	req := planner.Request{
		AltitudeFeet:   sc.AltitudeFeet,
		GroundSpeedMPH: sc.GroundSpeedMPH,
		Current:        sc.Current,
		Target:         sc.Target,
	}

	flags := cmd.Flags()
	if flags.Changed("altitude") {
		req.AltitudeFeet = altitudeFeet
	}
	if flags.Changed("speed") {
		req.GroundSpeedMPH = groundSpeedMPH
	}
	if flags.Changed("lat") {
		req.Current.Lat = fromLat
	}
	if flags.Changed("lon") {
		req.Current.Lon = fromLon
	}

	id := sc.TargetID
	if flags.Changed("target") {
		id = targetID
	}
	if id != "" {
		target, ok := env.catalog.Lookup(id)
		if !ok {
			return planner.Request{}, fmt.Errorf("unknown target %q", id)
		}
		req.Target = target.Location
	}
	if flags.Changed("to-lat") {
		req.Target.Lat = toLat
	}
	if flags.Changed("to-lon") {
		req.Target.Lon = toLon
	}
	return req, nil
}

type planOutput struct {
	Name         string              `json:"name"`
	Request      planner.Request     `json:"request"`
	FreeFallTime float64             `json:"free_fall_time_s"`
	Solution     models.DropSolution `json:"solution"`
	Error        string              `json:"error,omitempty"`
}

func solve(name string, req planner.Request) (planOutput, error) {
	out := planOutput{Name: name, Request: req}

	sol, err := env.planner.Plan(req)
	if err != nil {
		return out, err
	}
	obj := env.cfg.Batch.Object
	ff, err := env.planner.FreeFall().FallTime(units.MetersFromFeet(req.AltitudeFeet), obj.Mass, obj.DragCoefficient)
	if err != nil {
		return out, err
	}
	out.FreeFallTime = ff
	out.Solution = sol
	return out, nil
}

func writeOutputs(cmd *cobra.Command, outs []planOutput) error {
	if outputJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(outs); err != nil {
			return fmt.Errorf("failed to encode solutions: %w", err)
		}
		return nil
	}
	for i, out := range outs {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if out.Error != "" {
			env.report.WriteError(out.Name, errors.New(out.Error))
			continue
		}
		env.report.WriteSolution(out.Name, out.Request, out.FreeFallTime, out.Solution)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := scenarioRequest(cmd)
	if err != nil {
		return err
	}

	if trace {
		step := 0
		traced, err := physics.NewSimulator(env.cfg.Constants, append(env.cfg.SimulatorOptions(),
			physics.WithObserver(func(st physics.FallState) {
				step++
				env.report.WriteTrace(step, st)
			}))...)
		if err != nil {
			return err
		}
		env.logger.Debug("tracing descent", "altitude_ft", req.AltitudeFeet, "time_slice", traced.TimeSlice())
		if _, err := traced.TimeToImpact(units.MetersFromFeet(req.AltitudeFeet)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	out, err := solve(env.cfg.Scenario.Name, req)
	if err != nil {
		return err
	}
	return writeOutputs(cmd, []planOutput{out})
}

func runNearest(cmd *cobra.Command, args []string) error {
	req, err := scenarioRequest(cmd)
	if err != nil {
		return err
	}

	targets, err := env.catalog.Nearest(req.Current, nearestCount)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets in catalog")
	}
	env.logger.Info("planning nearest targets", "found", len(targets))

	// One failing target does not stop the others.
	outs := make([]planOutput, 0, len(targets))
	var failed int
	for _, target := range targets {
		r := req
		r.Target = target.Location
		out, err := solve(target.ID, r)
		if err != nil {
			if errors.Is(err, physics.ErrConfiguration) {
				return err
			}
			env.logger.Warn("target skipped", "target", target.ID, "error", err)
			out.Error = err.Error()
			failed++
		}
		outs = append(outs, out)
	}
	if err := writeOutputs(cmd, outs); err != nil {
		return err
	}
	if failed == len(outs) {
		return fmt.Errorf("all %d targets failed", failed)
	}
	return nil
}
