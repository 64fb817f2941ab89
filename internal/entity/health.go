package entity

import (
	"fmt"
	"strings"
)

// Status is the coarse health state driving an entity's visual treatment.
type Status int

const (
	StatusHealthy  Status = iota // neutral
	StatusWarning                // pale yellow
	StatusCritical               // red with glow
	StatusOffline                // gray, desaturated
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// ParseStatus accepts the lowercase names produced by String.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "healthy":
		return StatusHealthy, nil
	case "warning":
		return StatusWarning, nil
	case "critical":
		return StatusCritical, nil
	case "offline":
		return StatusOffline, nil
	}
	return StatusHealthy, fmt.Errorf("unknown status %q", s)
}

// Health is the mutable visual health of one entity. Voltage is 0..100.
type Health struct {
	Voltage     float64
	Revenue     float64
	ActiveUsers int
	Status      Status
}

// DefaultHealth is what a freshly placed entity reports.
func DefaultHealth() Health {
	return Health{Voltage: 100, Status: StatusHealthy}
}

// HealthPatch is a partial update; nil fields keep their prior value.
type HealthPatch struct {
	Voltage     *float64
	Revenue     *float64
	ActiveUsers *int
	Status      *Status
}

// WithVoltage returns p with Voltage set.
func (p HealthPatch) WithVoltage(v float64) HealthPatch {
	p.Voltage = &v
	return p
}

// WithRevenue returns p with Revenue set.
func (p HealthPatch) WithRevenue(v float64) HealthPatch {
	p.Revenue = &v
	return p
}

// WithActiveUsers returns p with ActiveUsers set.
func (p HealthPatch) WithActiveUsers(n int) HealthPatch {
	p.ActiveUsers = &n
	return p
}

// WithStatus returns p with Status set.
func (p HealthPatch) WithStatus(s Status) HealthPatch {
	p.Status = &s
	return p
}

// Empty reports whether the patch changes nothing.
func (p HealthPatch) Empty() bool {
	return p.Voltage == nil && p.Revenue == nil && p.ActiveUsers == nil && p.Status == nil
}

// Merge returns h with every non-nil field of p applied.
func (h Health) Merge(p HealthPatch) Health {
	if p.Voltage != nil {
		h.Voltage = *p.Voltage
	}
	if p.Revenue != nil {
		h.Revenue = *p.Revenue
	}
	if p.ActiveUsers != nil {
		h.ActiveUsers = *p.ActiveUsers
	}
	if p.Status != nil {
		h.Status = *p.Status
	}
	return h
}

// voltageRatio clamps voltage into 0..1 for the indicator bar.
func (h Health) voltageRatio() float64 {
	r := h.Voltage / 100
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
