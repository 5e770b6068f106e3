// Package campaign expands drip-campaign templates into a lead's send times
// and renders the messages sent at each touchpoint.
package campaign

import (
	"log"
	"time"
	_ "time/tzdata"

	"github.com/unclebandit/proposal-backend/internal/model"
)

const (
	DefaultTimezone = "America/New_York"

	businessHoursStart = 8
	businessHoursEnd   = 20
)

// Scheduler places template touchpoints on the lead's local calendar.
type Scheduler struct {
	now         func() time.Time
	defaultZone *time.Location
}

// NewScheduler uses defaultZone for leads without a usable timezone. A nil now
// means time.Now.
func NewScheduler(defaultZone *time.Location, now func() time.Time) *Scheduler {
	if defaultZone == nil {
		defaultZone = LoadZone(DefaultTimezone, time.UTC)
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now, defaultZone: defaultZone}
}

// LoadZone resolves an IANA zone name, returning fallback when the name is
// empty or unknown.
func LoadZone(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown timezone %q, using %s", name, fallback)
		return fallback
	}
	return loc
}

// Schedule resolves every touchpoint of t against the current time in the
// lead's zone. The result keeps template order, which after clamping to
// business hours is not necessarily chronological. Steps with no timing are
// skipped.
func (s *Scheduler) Schedule(t model.CampaignTemplate, facts model.BorrowerFacts) []model.ScheduledTouchpoint {
	loc := LoadZone(facts.Timezone, s.defaultZone)
	start := s.now().In(loc)

	scheduled := make([]model.ScheduledTouchpoint, 0, len(t.Touchpoints))
	for i, spec := range t.Touchpoints {
		at, ok := resolve(spec, start)
		if !ok {
			log.Printf("campaign %s: skipping step %d (%s), no delay or clock time", t.Name, i, spec.MessageKey)
			continue
		}

		scheduled = append(scheduled, model.ScheduledTouchpoint{
			TouchpointSpec: spec,
			ScheduledTime:  clampToBusinessHours(at),
			Status:         model.TouchpointPending,
		})
	}
	return scheduled
}

func resolve(spec model.TouchpointSpec, start time.Time) (time.Time, bool) {
	switch spec.Timing.Kind {
	case model.TimingDelay:
		return start.Add(time.Duration(spec.Timing.DelayMinutes) * time.Minute), true
	case model.TimingClock:
		y, m, d := start.Date()
		return time.Date(y, m, d+spec.Day-1, spec.Timing.Hour, spec.Timing.Minute, 0, 0, start.Location()), true
	}
	return time.Time{}, false
}

// clampToBusinessHours moves early sends to 08:00 the same day and late sends
// to 08:00 the next day.
func clampToBusinessHours(t time.Time) time.Time {
	y, m, d := t.Date()
	switch {
	case t.Hour() < businessHoursStart:
		return time.Date(y, m, d, businessHoursStart, 0, 0, 0, t.Location())
	case t.Hour() >= businessHoursEnd:
		return time.Date(y, m, d+1, businessHoursStart, 0, 0, 0, t.Location())
	}
	return t
}
