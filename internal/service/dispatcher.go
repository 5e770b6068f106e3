package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/queue"
)

const DefaultRedispatchAfter = 15 * time.Minute

// Dispatcher polls active campaigns and publishes every due, automatic
// touchpoint as a delivery job. Manual touchpoints are left for an operator.
// A job already handed out is not published again until RedispatchAfter has
// passed without it being marked sent.
type Dispatcher struct {
	Campaigns       *CampaignService
	Queue           queue.Queue
	Now             func() time.Time
	RedispatchAfter time.Duration

	mu       sync.Mutex
	inFlight map[string]time.Time
}

func NewDispatcher(campaigns *CampaignService, q queue.Queue) *Dispatcher {
	return &Dispatcher{
		Campaigns:       campaigns,
		Queue:           q,
		RedispatchAfter: DefaultRedispatchAfter,
		inFlight:        make(map[string]time.Time),
	}
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// DispatchDue publishes what is due now and returns how many jobs went out.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	campaigns, err := d.Campaigns.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active campaigns: %w", err)
	}

	now := d.now()
	d.prune(now)
	published := 0
	for _, c := range campaigns {
		for _, due := range dueTouchpoints(c, now) {
			if due.Touchpoint.Manual {
				continue
			}

			key := c.LeadID + "#" + strconv.Itoa(due.Index)
			if !d.claim(key, now) {
				continue
			}

			msg, err := d.Campaigns.Personalizer.Personalize(due.Touchpoint.MessageKey, c.Lead)
			if err != nil {
				log.Printf("lead %s touchpoint %d: %v", c.LeadID, due.Index, err)
				d.release(key)
				continue
			}

			job := model.DeliveryJob{
				JobID:         uuid.NewString(),
				LeadID:        c.LeadID,
				Index:         due.Index,
				Channel:       due.Touchpoint.Channel,
				MessageKey:    due.Touchpoint.MessageKey,
				Email:         c.Lead.Email,
				Phone:         c.Lead.Phone,
				Message:       msg,
				ScheduledTime: due.Touchpoint.ScheduledTime,
			}
			if err := d.Queue.Publish(queue.TopicTouchpointSends, job); err != nil {
				log.Printf("failed to enqueue lead %s touchpoint %d: %v", c.LeadID, due.Index, err)
				d.release(key)
				continue
			}
			published++
		}
	}
	return published, nil
}

// Run dispatches on every tick until ctx is done.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := d.DispatchDue(ctx)
			if err != nil {
				log.Println("dispatch failed:", err)
				continue
			}
			if n > 0 {
				log.Printf("dispatched %d touchpoints", n)
			}
		}
	}
}

func (d *Dispatcher) claim(key string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inFlight == nil {
		d.inFlight = make(map[string]time.Time)
	}
	if at, ok := d.inFlight[key]; ok && now.Sub(at) < d.RedispatchAfter {
		return false
	}
	d.inFlight[key] = now
	return true
}

// prune forgets claims old enough to be redispatched anyway.
func (d *Dispatcher) prune(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, at := range d.inFlight {
		if now.Sub(at) >= d.RedispatchAfter {
			delete(d.inFlight, key)
		}
	}
}

func (d *Dispatcher) release(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inFlight, key)
}
