package planner

import (
	"fmt"
	"io"
	"strings"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/charmbracelet/lipgloss"
)

const separator = "-----------"

// Report writes line-oriented text reports. Output is identical with and
// without color apart from the escape codes.
type Report struct {
	w       io.Writer
	heading func(string) string
	failure func(string) string
}

// NewReport creates a report writer. Color should only be enabled when w is a
// terminal.
func NewReport(w io.Writer, color bool) *Report {
	r := &Report{
		w:       w,
		heading: plain,
		failure: plain,
	}
	if color {
		renderer := lipgloss.NewRenderer(w)
		headingStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
		failureStyle := renderer.NewStyle().Foreground(lipgloss.Color("#FF5555"))
		r.heading = func(s string) string { return headingStyle.Render(s) }
		r.failure = func(s string) string { return failureStyle.Render(s) }
	}
	return r
}

func plain(s string) string { return s }

func (r *Report) line(label string, value float64) {
	fmt.Fprintf(r.w, "%-31s:%.4f\n", label, value)
}

// WriteBatch prints one block per row. Failed rows print their error in place
// of values so the rest of the table still renders.
func (r *Report) WriteBatch(rows []BatchRow) {
	for _, row := range rows {
		fmt.Fprintln(r.w, separator)
		fmt.Fprintf(r.w, "%-31s:%v\n", "Input (ft)", row.AltitudeFeet)
		if row.Err != nil {
			fmt.Fprintln(r.w, r.failure("error: "+row.Err.Error()))
			continue
		}
		r.line("Time to impact (s)", row.TimeToImpact)
		r.line("Free fall time (s)", row.FreeFallTime)
		r.line("Alt(time to impact) (ft)", row.AltitudeFromImpactFeet)
		r.line("Alt(free fall time) (ft)", row.AltitudeFromFreeFallFeet)
	}
}

// WriteSolution prints the end-to-end scenario. freeFallTime is the closed
// form fall time for the request altitude.
func (r *Report) WriteSolution(title string, req Request, freeFallTime float64, sol models.DropSolution) {
	fmt.Fprintln(r.w, r.heading(title))
	fmt.Fprintln(r.w, strings.Repeat("=", len(title)))
	fmt.Fprintf(r.w, "%-31s:%.6f, %.6f\n", "Current position", req.Current.Lat, req.Current.Lon)
	fmt.Fprintf(r.w, "%-31s:%.6f, %.6f\n", "Target position", req.Target.Lat, req.Target.Lon)
	r.line("Altitude (ft)", req.AltitudeFeet)
	r.line("Ground speed (m/s)", sol.GroundSpeedMS)
	r.line("Free fall time (s)", freeFallTime)
	r.line("Distance (miles)", sol.DistanceMiles)
	r.line("Distance (meters)", sol.DistanceMeters)
	r.line("Time to target (s)", sol.TimeToTarget)
	r.line("Time to impact (s)", sol.TimeToImpact)
	r.line("Time until drop (s)", sol.TimeUntilDrop)
	r.line("Ideal drop altitude (m)", sol.IdealAltitudeMeters)
	r.line("Ideal drop altitude (ft)", sol.IdealAltitudeFeet)
	r.line("Bearing to target (deg)", sol.BearingDeg)
	r.line("Time to impact from ideal (s)", sol.IdealTimeToImpact)
	if sol.TimeUntilDrop < 0 {
		fmt.Fprintln(r.w, r.failure("release point passed"))
	}
}

// WriteError reports a scenario that could not be planned.
func (r *Report) WriteError(title string, err error) {
	fmt.Fprintln(r.w, r.heading(title))
	fmt.Fprintln(r.w, r.failure("error: "+err.Error()))
}

// WriteTrace prints one simulator step.
func (r *Report) WriteTrace(step int, st physics.FallState) {
	fmt.Fprintf(r.w, "%5d  t=%7.2fs  alt=%10.3fm  v=%7.3fm/s\n", step, st.ElapsedS, st.AltitudeM, st.SpeedMS)
}
