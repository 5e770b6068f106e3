package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/proposal-backend/internal/model"
)

// TopicTouchpointSends carries model.DeliveryJob payloads.
const TopicTouchpointSends = "touchpoint_sends"

const DefaultMaxRetries = 3

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue runs handlers in goroutines with retry and linear backoff
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: DefaultMaxRetries,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Payload:    payload,
			MaxRetries: q.MaxRetries,
		}
		go q.processJob(handler, job)
	}

	return nil
}

func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		log.Printf("job failed (attempt %d/%d): %v", job.RetryCount, job.MaxRetries+1, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("job permanently failed after %d attempts: %v", job.RetryCount, err)
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartDeliverySubscriber feeds delivery jobs from q to deliver. A job that
// cannot be decoded is logged and dropped, since retrying it cannot help.
func StartDeliverySubscriber(q Queue, deliver func(job model.DeliveryJob) error) error {
	err := q.Subscribe(TopicTouchpointSends, func(payload any) error {
		job, err := decodeDeliveryJob(payload)
		if err != nil {
			log.Println("invalid delivery job:", err)
			return nil
		}
		return deliver(job)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicTouchpointSends, err)
	}
	return nil
}

func decodeDeliveryJob(payload any) (model.DeliveryJob, error) {
	switch p := payload.(type) {
	case model.DeliveryJob:
		return p, nil
	case *model.DeliveryJob:
		if p == nil {
			return model.DeliveryJob{}, fmt.Errorf("nil job")
		}
		return *p, nil
	case []byte:
		var job model.DeliveryJob
		if err := json.Unmarshal(p, &job); err != nil {
			return model.DeliveryJob{}, err
		}
		return job, nil
	}
	return model.DeliveryJob{}, fmt.Errorf("unexpected payload type %T", payload)
}
