package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/proposal-backend/internal/campaign"
	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/queue"
	"github.com/unclebandit/proposal-backend/internal/repository"
	"github.com/unclebandit/proposal-backend/internal/service"
)

// Mock sender function always succeeds
func MockSender(job model.DeliveryJob) bool {
	return true
}

// countingSender records how many jobs reached the provider
type countingSender struct {
	calls int32
}

func (s *countingSender) Send(job model.DeliveryJob) bool {
	atomic.AddInt32(&s.calls, 1)
	return true
}

func (s *countingSender) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}

func jobFor(c *model.Campaign, index int) model.DeliveryJob {
	tp := c.ScheduledTouchpoints[index]
	return model.DeliveryJob{
		JobID:         "job-" + c.LeadID,
		LeadID:        c.LeadID,
		Index:         index,
		Channel:       tp.Channel,
		MessageKey:    tp.MessageKey,
		ScheduledTime: tp.ScheduledTime,
	}
}

func TestWorkerDeliverMarksSent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
	require.NoError(t, err)

	sender := &countingSender{}
	worker := service.NewWorker(svc, sender.Send)
	job := jobFor(c, 0)

	require.NoError(t, worker.Deliver(ctx, job))
	stored, err := svc.GetCampaign(ctx, "lead-1")
	require.NoError(t, err)
	assert.Equal(t, model.TouchpointSent, stored.ScheduledTouchpoints[0].Status)

	// a duplicate delivery is acknowledged without sending again
	require.NoError(t, worker.Deliver(ctx, job))
	assert.Equal(t, 1, sender.Calls())
	stored, err = svc.GetCampaign(ctx, "lead-1")
	require.NoError(t, err)
	assert.Len(t, stored.CompletedTouchpoints, 1)
}

func TestWorkerDeliverFailureLeavesPending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
	require.NoError(t, err)

	worker := service.NewWorker(svc, func(model.DeliveryJob) bool { return false })
	assert.Error(t, worker.Deliver(ctx, jobFor(c, 1)))

	stored, err := svc.GetCampaign(ctx, "lead-1")
	require.NoError(t, err)
	assert.Equal(t, model.TouchpointPending, stored.ScheduledTouchpoints[1].Status)
}

func TestWorkerDropsJobsForMissingCampaigns(t *testing.T) {
	svc, _ := newTestService(t)
	sender := &countingSender{}
	worker := service.NewWorker(svc, sender.Send)

	assert.NoError(t, worker.Deliver(context.Background(), model.DeliveryJob{LeadID: "ghost", Index: 0}))
	assert.Zero(t, sender.Calls())
}

func TestWorkerSkipsInactiveCampaigns(t *testing.T) {
	tests := []struct {
		name   string
		change func(ctx context.Context, svc *service.CampaignService) error
	}{
		{"paused", func(ctx context.Context, svc *service.CampaignService) error {
			_, err := svc.SetStatus(ctx, "lead-1", model.CampaignPaused)
			return err
		}},
		{"stopped", func(ctx context.Context, svc *service.CampaignService) error {
			_, err := svc.SetStatus(ctx, "lead-1", model.CampaignStopped)
			return err
		}},
		{"borrower replied", func(ctx context.Context, svc *service.CampaignService) error {
			_, err := svc.Respond(ctx, "lead-1", false)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()
			c, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
			require.NoError(t, err)
			job := jobFor(c, 0)

			require.NoError(t, tt.change(ctx, svc))

			sender := &countingSender{}
			require.NoError(t, service.NewWorker(svc, sender.Send).Deliver(ctx, job))
			assert.Zero(t, sender.Calls())

			stored, err := svc.GetCampaign(ctx, "lead-1")
			require.NoError(t, err)
			assert.Equal(t, model.TouchpointPending, stored.ScheduledTouchpoints[0].Status)
		})
	}
}

func TestWorkerSkipsTouchpointMarkedByOperator(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
	require.NoError(t, err)
	job := jobFor(c, 2)

	_, err = svc.MarkSent(ctx, "lead-1", 2)
	require.NoError(t, err)

	sender := &countingSender{}
	require.NoError(t, service.NewWorker(svc, sender.Send).Deliver(ctx, job))
	assert.Zero(t, sender.Calls())
}

func TestWorkerSkipsJobsFromReplacedCampaign(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
	require.NoError(t, err)
	job := jobFor(c, 0)

	_, err = svc.Respond(ctx, "lead-1", true)
	require.NoError(t, err)

	sender := &countingSender{}
	require.NoError(t, service.NewWorker(svc, sender.Send).Deliver(ctx, job))
	assert.Zero(t, sender.Calls())

	stored, err := svc.GetCampaign(ctx, "lead-1")
	require.NoError(t, err)
	assert.Equal(t, campaign.TypeResponded, stored.CampaignType)
	assert.Empty(t, stored.CompletedTouchpoints)
}

// mockMarker serves one active campaign and fails MarkSent with err
type mockMarker struct {
	campaign *model.Campaign
	err      error
}

func (m *mockMarker) GetCampaign(ctx context.Context, leadID string) (*model.Campaign, error) {
	return m.campaign, nil
}

func (m *mockMarker) MarkSent(ctx context.Context, leadID string, index int) (*model.ScheduledTouchpoint, error) {
	return nil, m.err
}

func TestWorkerPropagatesStoreErrors(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.CreateCampaign(context.Background(), "lead-1", campaign.TypeNewLeadCashOut, testLead)
	require.NoError(t, err)
	job := jobFor(c, 0)

	worker := service.NewWorker(&mockMarker{campaign: c, err: assert.AnError}, MockSender)
	assert.ErrorIs(t, worker.Deliver(context.Background(), job), assert.AnError)

	worker = service.NewWorker(&mockMarker{campaign: c, err: appErrors.ErrTouchpointAlreadySent}, MockSender)
	assert.NoError(t, worker.Deliver(context.Background(), job))
}

func TestDispatchThroughInMemoryQueue(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeResponded, testLead)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)

	q := queue.NewInMemoryQueue()
	worker := service.NewWorker(svc, func(job model.DeliveryJob) bool {
		wg.Done() // signal that job is processed
		return true
	})
	require.NoError(t, queue.StartDeliverySubscriber(q, func(job model.DeliveryJob) error {
		return worker.Deliver(ctx, job)
	}))

	d := service.NewDispatcher(svc, q)
	d.Now = clk.Now
	clk.Advance(6 * time.Minute)
	n, err := d.DispatchDue(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	wg.Wait()
	assert.Eventually(t, func() bool {
		c, err := svc.GetCampaign(ctx, "lead-1")
		return err == nil && c.ScheduledTouchpoints[0].Status == model.TouchpointSent
	}, time.Second, 10*time.Millisecond)
}

// Two touchpoints due on the same tick are delivered in parallel goroutines;
// both must end up sent even when the store is slow.
func TestParallelDeliveriesForOneLeadAreAllRecorded(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		svc, clk := newTestService(t)
		svc.CampaignRepo = &slowCampaignRepo{
			MemoryCampaignRepository: repository.NewMemoryCampaignRepository(),
			delay:                    2 * time.Millisecond,
		}
		ctx := context.Background()
		_, err := svc.CreateCampaign(ctx, "lead-1", campaign.TypeNewLeadCashOut, testLead)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		q := queue.NewInMemoryQueue()
		worker := service.NewWorker(svc, MockSender)
		require.NoError(t, queue.StartDeliverySubscriber(q, func(job model.DeliveryJob) error {
			defer wg.Done()
			return worker.Deliver(ctx, job)
		}))

		d := service.NewDispatcher(svc, q)
		d.Now = clk.Now
		clk.Advance(time.Minute)
		n, err := d.DispatchDue(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		wg.Wait()

		c, err := svc.GetCampaign(ctx, "lead-1")
		require.NoError(t, err)
		assert.Equal(t, model.TouchpointSent, c.ScheduledTouchpoints[0].Status, "trial %d", trial)
		assert.Equal(t, model.TouchpointSent, c.ScheduledTouchpoints[1].Status, "trial %d", trial)
		assert.Len(t, c.CompletedTouchpoints, 2, "trial %d", trial)
	}
}
