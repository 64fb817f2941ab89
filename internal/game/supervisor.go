package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/skyline/internal/entity"
)

const (
	voltageStep   = 14.0 // max voltage swing per poll
	revenueStep   = 40.0
	usersStep     = 3
	outageChance  = 0.03 // per poll, per entity
	recoverChance = 0.35 // per poll while offline
)

// StatusForVoltage derives the status a supervisor reports for a reading.
func StatusForVoltage(v float64) entity.Status {
	switch {
	case v <= 0:
		return entity.StatusOffline
	case v <= 30:
		return entity.StatusCritical
	case v <= 60:
		return entity.StatusWarning
	default:
		return entity.StatusHealthy
	}
}

// Supervisor stands in for the host poller: every PollTicks it random-walks
// each entity's health and pushes the result through UpdateHealth.
type Supervisor struct {
	rng   *rand.Rand
	every int
	tick  int
	log   *EventLog
	act   *ActivityLog

	onChange func(tick int, e *entity.Entity, from, to entity.Status)
}

// NewSupervisor creates a deterministic supervisor. every <= 0 disables polling.
func NewSupervisor(seed int64, every int, log *EventLog, act *ActivityLog) *Supervisor {
	return &Supervisor{
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- simulated telemetry
		every: every,
		log:   log,
		act:   act,
	}
}

// OnStatusChange registers fn to run after any poll that changes an
// entity's status.
func (sv *Supervisor) OnStatusChange(fn func(tick int, e *entity.Entity, from, to entity.Status)) {
	sv.onChange = fn
}

// Tick advances one game tick and polls when due. Returns true on a poll.
func (sv *Supervisor) Tick(scene *Scene) bool {
	sv.tick++
	if sv.every <= 0 || sv.tick%sv.every != 0 {
		return false
	}
	for _, e := range scene.Sorted() {
		sv.poll(e)
	}
	return true
}

// nextReading random-walks h into a patch.
func (sv *Supervisor) nextReading(h entity.Health) entity.HealthPatch {
	v := h.Voltage
	switch {
	case h.Status == entity.StatusOffline && sv.rng.Float64() < recoverChance:
		v = 40 + sv.rng.Float64()*30
	case h.Status == entity.StatusOffline:
		v = 0
	case sv.rng.Float64() < outageChance:
		v = 0
	default:
		v = math.Max(0, math.Min(100, v+(sv.rng.Float64()*2-1)*voltageStep))
		if v == 0 {
			v = 1 // only an outage takes a structure offline
		}
	}
	revenue := math.Max(0, h.Revenue+(sv.rng.Float64()*2-1)*revenueStep+revenueStep/4)
	users := h.ActiveUsers + sv.rng.Intn(2*usersStep+1) - usersStep
	if users < 0 {
		users = 0
	}
	return entity.HealthPatch{}.
		WithVoltage(v).
		WithRevenue(revenue).
		WithActiveUsers(users).
		WithStatus(StatusForVoltage(v))
}

func (sv *Supervisor) poll(e *entity.Entity) {
	before := e.Health()
	e.UpdateHealth(sv.nextReading(before))
	after := e.Health()
	if sv.log != nil {
		sv.log.AddVerbose(e.ID(), "health", "poll", fmt.Sprintf("v=%.0f rev=%.0f users=%d", after.Voltage, after.Revenue, after.ActiveUsers), after.Voltage)
	}
	if before.Status == after.Status {
		return
	}
	msg := fmt.Sprintf("%s → %s", before.Status, after.Status)
	if sv.log != nil {
		sv.log.Add(e.ID(), "health", "status_change", msg, after.Voltage)
	}
	if sv.act != nil {
		sv.act.Add(sv.tick, e.ID(), after.Status, msg)
	}
	if sv.onChange != nil {
		sv.onChange(sv.tick, e, before.Status, after.Status)
	}
}
