package campaign_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/proposal-backend/internal/campaign"
	"github.com/unclebandit/proposal-backend/internal/model"
)

func eastern(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestScheduleLateClockTimeRollsToNextMorning(t *testing.T) {
	loc := eastern(t)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	scheduler := campaign.NewScheduler(loc, fixedClock(start))
	tmpl := model.CampaignTemplate{
		Name: "late",
		Touchpoints: []model.TouchpointSpec{
			{Day: 1, Channel: model.ChannelSMS, Timing: model.At("10:00pm"), MessageKey: "ghost_me"},
		},
	}

	got := scheduler.Schedule(tmpl, model.BorrowerFacts{})

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, loc), got[0].ScheduledTime)
}

func TestScheduleEarlyClockTimeSnapsToEight(t *testing.T) {
	loc := eastern(t)
	scheduler := campaign.NewScheduler(loc, fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, loc)))
	tmpl := model.CampaignTemplate{
		Name: "early",
		Touchpoints: []model.TouchpointSpec{
			{Day: 3, Channel: model.ChannelSMS, Timing: model.At("6:15am"), MessageKey: "ghost_me"},
		},
	}

	got := scheduler.Schedule(tmpl, model.BorrowerFacts{})

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 12, 8, 0, 0, 0, loc), got[0].ScheduledTime)
}

func TestScheduleDelayFromStart(t *testing.T) {
	loc := eastern(t)
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	scheduler := campaign.NewScheduler(loc, fixedClock(start))

	got := scheduler.Schedule(campaign.NewLeadCashOutTemplate(), model.BorrowerFacts{Name: "Sarah Johnson"})

	require.NotEmpty(t, got)
	assert.Equal(t, start, got[0].ScheduledTime)
	assert.Equal(t, start.Add(3*time.Minute), got[2].ScheduledTime)
	assert.Equal(t, start.Add(297*time.Minute), got[8].ScheduledTime)
	for _, tp := range got {
		assert.Equal(t, model.TouchpointPending, tp.Status)
		assert.Nil(t, tp.SentAt)
	}
}

func TestScheduleDelayPastEveningRollsOver(t *testing.T) {
	loc := eastern(t)
	start := time.Date(2026, 3, 10, 19, 0, 0, 0, loc)
	scheduler := campaign.NewScheduler(loc, fixedClock(start))

	got := scheduler.Schedule(campaign.NewLeadCashOutTemplate(), model.BorrowerFacts{})

	// 19:00 + 170 minutes lands after 20:00
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, loc), got[4].ScheduledTime)
	assert.Equal(t, start.Add(15*time.Minute), got[3].ScheduledTime)
}

func TestScheduleUsesLeadTimezone(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	// 17:00 UTC is 09:00 in Los Angeles in January
	now := time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)
	scheduler := campaign.NewScheduler(eastern(t), fixedClock(now))

	got := scheduler.Schedule(campaign.NewLeadCashOutTemplate(), model.BorrowerFacts{Timezone: "America/Los_Angeles"})

	day2 := got[9]
	require.Equal(t, "good_morning", day2.MessageKey)
	local := day2.ScheduledTime.In(la)
	assert.Equal(t, 16, local.Day())
	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 2, local.Minute())
}

func TestScheduleUnknownTimezoneFallsBack(t *testing.T) {
	loc := eastern(t)
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	scheduler := campaign.NewScheduler(loc, fixedClock(start))

	got := scheduler.Schedule(campaign.RespondedTemplate(), model.BorrowerFacts{Timezone: "Mars/Olympus_Mons"})

	require.NotEmpty(t, got)
	assert.Equal(t, loc.String(), got[0].ScheduledTime.Location().String())
}

func TestScheduleSkipsStepsWithoutTiming(t *testing.T) {
	loc := eastern(t)
	scheduler := campaign.NewScheduler(loc, fixedClock(time.Date(2026, 3, 10, 10, 0, 0, 0, loc)))
	tmpl := model.CampaignTemplate{
		Name: "broken",
		Touchpoints: []model.TouchpointSpec{
			{Day: 1, Channel: model.ChannelSMS, Timing: model.Delay(0), MessageKey: "initial_contact"},
			{Day: 1, Channel: model.ChannelSMS, MessageKey: "confirm_name"},
			{Day: 2, Channel: model.ChannelSMS, Timing: model.At("9:02am"), MessageKey: "good_morning"},
		},
	}

	got := scheduler.Schedule(tmpl, model.BorrowerFacts{})

	require.Len(t, got, 2)
	assert.Equal(t, "initial_contact", got[0].MessageKey)
	assert.Equal(t, "good_morning", got[1].MessageKey)
}

func TestScheduleCashOutIsChronologicalFromMorningStart(t *testing.T) {
	loc := eastern(t)
	scheduler := campaign.NewScheduler(loc, fixedClock(time.Date(2026, 3, 10, 10, 0, 0, 0, loc)))

	got := scheduler.Schedule(campaign.NewLeadCashOutTemplate(), model.BorrowerFacts{})

	require.Len(t, got, len(campaign.NewLeadCashOutTemplate().Touchpoints))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].ScheduledTime.Before(got[i-1].ScheduledTime), "step %d before step %d", i, i-1)
	}
}
