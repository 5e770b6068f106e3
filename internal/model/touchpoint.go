package model

import (
	"fmt"
	"strings"
	"time"
)

type Channel string

const (
	ChannelSMS       Channel = "SMS"
	ChannelEmail     Channel = "Email"
	ChannelVoicemail Channel = "Voicemail"
)

type TimingKind string

const (
	TimingDelay TimingKind = "delay"
	TimingClock TimingKind = "clock"
)

// Timing says when a touchpoint fires: either a delay from campaign start or a
// local wall-clock time on the touchpoint's day. The zero value is neither.
type Timing struct {
	Kind         TimingKind `json:"kind"`
	DelayMinutes int        `json:"delay_minutes,omitempty"`
	Hour         int        `json:"hour,omitempty"`
	Minute       int        `json:"minute,omitempty"`
}

// Delay fires minutes after the campaign starts.
func Delay(minutes int) Timing {
	return Timing{Kind: TimingDelay, DelayMinutes: minutes}
}

// At fires at a local clock time such as "9:02am". It panics on a malformed
// time so a broken template fails when it is defined.
func At(clock string) Timing {
	t, err := ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseClock accepts 12-hour times like "9:02am", "12:16PM" or "4pm".
func ParseClock(clock string) (Timing, error) {
	s := strings.ToLower(strings.TrimSpace(clock))
	layout := "3:04pm"
	if !strings.Contains(s, ":") {
		layout = "3pm"
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return Timing{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return Timing{Kind: TimingClock, Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

func (t Timing) Valid() bool {
	switch t.Kind {
	case TimingDelay:
		return t.DelayMinutes >= 0
	case TimingClock:
		return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
	}
	return false
}

func (t Timing) String() string {
	switch t.Kind {
	case TimingDelay:
		return fmt.Sprintf("+%dm", t.DelayMinutes)
	case TimingClock:
		return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("3:04pm")
	}
	return "unset"
}

// TouchpointSpec is one step of a campaign template. Day is 1-based.
type TouchpointSpec struct {
	Day        int     `json:"day"`
	Channel    Channel `json:"channel"`
	Timing     Timing  `json:"timing"`
	MessageKey string  `json:"template"`
	Manual     bool    `json:"manual,omitempty"`
}

type CampaignTemplate struct {
	Name        string           `json:"name"`
	Version     int              `json:"version"`
	Touchpoints []TouchpointSpec `json:"touchpoints"`
}

type TouchpointStatus string

const (
	TouchpointPending TouchpointStatus = "pending"
	TouchpointSent    TouchpointStatus = "sent"
)

type ScheduledTouchpoint struct {
	TouchpointSpec
	ScheduledTime time.Time        `json:"scheduled_time"`
	Status        TouchpointStatus `json:"status"`
	SentAt        *time.Time       `json:"sent_at"`
}
