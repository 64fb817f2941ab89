package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/skyline/internal/entity"
)

// reportWindowTicks is the default sliding window for recent-health reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// EntityReport captures one entity's health at one point in time.
type EntityReport struct {
	ID          string
	Category    entity.Category
	Status      entity.Status
	Voltage     float64
	Revenue     float64
	ActiveUsers int
}

// HealthReport is a full snapshot of the scene at one tick.
type HealthReport struct {
	Tick int

	// Status distribution (Status → count).
	Statuses map[entity.Status]int

	TotalRevenue float64
	TotalUsers   int
	AvgVoltage   float64

	// Per-entity detail, sorted by id.
	Entities []EntityReport
}

// --- Reporter ---

// HealthReporter collects periodic snapshots of the scene and summarises
// them over sliding time windows.
type HealthReporter struct {
	history     []HealthReport
	windowTicks int
}

// NewHealthReporter creates a reporter with the given window size.
func NewHealthReporter(windowTicks int) *HealthReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &HealthReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from the scene. Call it periodically.
func (r *HealthReporter) Collect(tick int, scene *Scene) {
	report := HealthReport{
		Tick:     tick,
		Statuses: make(map[entity.Status]int),
	}
	for _, e := range scene.Sorted() {
		h := e.Health()
		report.Statuses[h.Status]++
		report.TotalRevenue += h.Revenue
		report.TotalUsers += h.ActiveUsers
		report.AvgVoltage += h.Voltage
		report.Entities = append(report.Entities, EntityReport{
			ID:          e.ID(),
			Category:    e.Category(),
			Status:      h.Status,
			Voltage:     h.Voltage,
			Revenue:     h.Revenue,
			ActiveUsers: h.ActiveUsers,
		})
	}
	if n := len(report.Entities); n > 0 {
		report.AvgVoltage /= float64(n)
	}
	sort.Slice(report.Entities, func(i, j int) bool { return report.Entities[i].ID < report.Entities[j].ID })
	r.history = append(r.history, report)
}

// Latest returns the most recent report, or nil.
func (r *HealthReporter) Latest() *HealthReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *HealthReporter) History() []HealthReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Share of samples in each status, as percentages (0-100).
	StatusPct map[entity.Status]float64

	AvgVoltage float64
	AvgRevenue float64
	AvgUsers   float64

	// Per-entity minimum voltage over the window.
	MinVoltage map[string]float64
}

// WindowSummary aggregates every report within the window ending at the
// latest sample.
func (r *HealthReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []HealthReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		StatusPct:   make(map[entity.Status]float64),
		MinVoltage:  make(map[string]float64),
	}
	var total float64
	for _, rpt := range window {
		for s, c := range rpt.Statuses {
			wr.StatusPct[s] += float64(c)
			total += float64(c)
		}
		wr.AvgVoltage += rpt.AvgVoltage
		wr.AvgRevenue += rpt.TotalRevenue
		wr.AvgUsers += float64(rpt.TotalUsers)
		for _, er := range rpt.Entities {
			if v, ok := wr.MinVoltage[er.ID]; !ok || er.Voltage < v {
				wr.MinVoltage[er.ID] = er.Voltage
			}
		}
	}
	if total > 0 {
		for s := range wr.StatusPct {
			wr.StatusPct[s] = wr.StatusPct[s] / total * 100
		}
	}
	wr.AvgVoltage /= n
	wr.AvgRevenue /= n
	wr.AvgUsers /= n
	return wr
}

var allStatuses = []entity.Status{
	entity.StatusHealthy, entity.StatusWarning, entity.StatusCritical, entity.StatusOffline,
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Health Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Status Distribution ---\n")
	for _, s := range allStatuses {
		fmt.Fprintf(&sb, "  %-9s %5.1f%%\n", s, wr.StatusPct[s])
	}

	sb.WriteString("\n--- Averages ---\n")
	fmt.Fprintf(&sb, "  voltage=%.1f  revenue=%.2f  users=%.1f\n", wr.AvgVoltage, wr.AvgRevenue, wr.AvgUsers)

	sb.WriteString("\n--- Lowest Voltage ---\n")
	ids := make([]string, 0, len(wr.MinVoltage))
	for id := range wr.MinVoltage {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&sb, "  %-14s %5.1f\n", id, wr.MinVoltage[id])
	}
	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent report.
func (r *HealthReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	for _, s := range allStatuses {
		fmt.Fprintf(&sb, "%s=%d ", s, rpt.Statuses[s])
	}
	fmt.Fprintf(&sb, "\nrevenue=%.2f users=%d avg_voltage=%.1f\n", rpt.TotalRevenue, rpt.TotalUsers, rpt.AvgVoltage)
	return sb.String()
}
