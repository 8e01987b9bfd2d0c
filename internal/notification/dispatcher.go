package notification

import (
	"context"
	"log"
	"sync"
	"time"
)

// Receipt reports which channels accepted the notification.
type Receipt struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// Sink delivers the notifications for one alert. Best-effort: errors are
// logged by the dispatcher and never reach the sweep.
type Sink interface {
	Dispatch(ctx context.Context, alertID uint64) (Receipt, error)
}

const dispatchTimeout = 30 * time.Second

// Dispatcher decouples alert persistence from delivery with a buffered
// queue and a single worker goroutine.
type Dispatcher struct {
	sink  Sink
	queue chan uint64
	wg    sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(sink Sink, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{sink: sink, queue: make(chan uint64, queueSize)}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for alertID := range d.queue {
			ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
			rcpt, err := d.sink.Dispatch(ctx, alertID)
			cancel()
			if err != nil {
				log.Printf("notification: dispatch alert %d: %v", alertID, err)
				continue
			}
			log.Printf("notification: alert %d dispatched (email=%t sms=%t push=%t)",
				alertID, rcpt.Email, rcpt.SMS, rcpt.Push)
		}
	}()
}

// Enqueue never blocks: when the queue is full the alert is dropped and
// logged, to be picked up by an explicit resend later.
func (d *Dispatcher) Enqueue(alertID uint64) {
	select {
	case d.queue <- alertID:
	default:
		log.Printf("notification: queue full, alert %d dropped", alertID)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	d.wg.Wait()
}
