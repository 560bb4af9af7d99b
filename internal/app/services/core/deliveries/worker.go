package deliveries

import (
	"context"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/app/services/shared/deliveryqueue"
	"oneroom-connector/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const workerLockKey = "oneroom:delivery:worker:lock"

// Worker drains the durable room-event queue with at-least-once semantics.
// Each tick it takes a best-effort distributed lock so only one instance
// forwards at a time, fetches a batch, and hands each event to the direct
// dispatcher. Failures increment the failed count until the message is
// parked on the dead-letter queue.
type Worker struct {
	log         *zap.Logger
	cfg         config.Webhook
	locker      contracts.LockerService
	queue       *deliveryqueue.Service
	dispatcher  contracts.EventDispatcher
	deliveryLog contracts.DeliveryLogRepository
	stop        chan struct{}
}

// NewWorker builds the queue drain worker. locker and deliveryLog may be nil
// when Redis or Mongo are not configured.
func NewWorker(
	log *zap.Logger,
	cfg config.Webhook,
	lockerSvc contracts.LockerService,
	queue *deliveryqueue.Service,
	dispatcher contracts.EventDispatcher,
	deliveryLog contracts.DeliveryLogRepository,
) *Worker {
	return &Worker{
		log:         log,
		cfg:         cfg,
		locker:      lockerSvc,
		queue:       queue,
		dispatcher:  dispatcher,
		deliveryLog: deliveryLog,
		stop:        make(chan struct{}),
	}
}

// Start begins the ticker loop and returns a stop function.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(time.Minute)

	w.log.Info("delivery worker started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	w.log.Info("delivery.worker.runOnce tick", zap.Time("now", now))

	if w.locker != nil {
		nextMinute := now.Truncate(time.Minute).Add(time.Minute)
		ttl := time.Until(nextMinute) - time.Second
		if ttl < time.Second {
			ttl = time.Second
		}
		acquired, lockVal, err := w.locker.TryLock(ctx, workerLockKey, ttl)
		if err != nil {
			w.log.Info("delivery worker lock attempt failed", zap.Error(err))
			return
		}
		if !acquired {
			w.log.Warn("delivery worker lock not acquired; another instance is running")
			return
		}
		defer func() {
			if err := w.locker.Unlock(ctx, workerLockKey, lockVal); err != nil {
				w.log.Error("delivery worker unlock failed", zap.Error(err))
			}
		}()
	}

	max := w.cfg.MaxQueue
	if max <= 0 {
		max = 1
	}
	items, err := w.queue.FetchN(ctx, max)
	if err != nil {
		w.log.Info("deliveryQueue.FetchN error", zap.Error(err))
		return
	}
	w.log.Info("deliveryQueue.FetchN success", zap.Int("fetched_count", len(items)))

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item deliveryqueue.QueuedItem) {
	msg := item.Message

	var event models.RoomEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		w.log.Error("delivery worker could not decode queued payload, parking on DLQ",
			zap.String(constvars.LoggingMessageIDKey, msg.ID),
			zap.Error(err),
		)
		if err := w.queue.EnqueueToDeadQueue(ctx, msg); err != nil {
			w.log.Info("enqueue to DLQ failed", zap.Error(err))
			return
		}
		_ = w.queue.AckMessage(item.DeliveryTag)
		return
	}

	outcome := w.dispatcher.Deliver(ctx, &event)
	w.recordOutcome(ctx, &event, outcome)
	if outcome.Delivered {
		if err := w.queue.AckMessage(item.DeliveryTag); err != nil {
			w.log.Info("ack failed after success",
				zap.String(constvars.LoggingMessageIDKey, msg.ID),
				zap.Error(err),
			)
		}
		w.log.Info("queued event delivered; removed from queue",
			zap.String(constvars.LoggingMessageIDKey, msg.ID),
			zap.String(constvars.LoggingEventIDKey, msg.EventID),
		)
		return
	}

	msg.FailedCount++
	if w.cfg.ThrottleRetry > 0 && msg.FailedCount >= w.cfg.ThrottleRetry {
		if err := w.queue.EnqueueToDeadQueue(ctx, msg); err != nil {
			w.log.Info("enqueue to DLQ failed",
				zap.String(constvars.LoggingMessageIDKey, msg.ID),
				zap.Error(err),
			)
			return
		}
		_ = w.queue.AckMessage(item.DeliveryTag)
		w.log.Info("moved queued event to DLQ",
			zap.String(constvars.LoggingMessageIDKey, msg.ID),
			zap.Int(constvars.LoggingFailedCountKey, msg.FailedCount),
		)
		return
	}
	if err := w.queue.Reenqueue(ctx, msg); err != nil {
		w.log.Info("reenqueue failed",
			zap.String(constvars.LoggingMessageIDKey, msg.ID),
			zap.Error(err),
		)
		return
	}
	_ = w.queue.AckMessage(item.DeliveryTag)
	w.log.Info("retryable failure; incremented failed count and requeued",
		zap.String(constvars.LoggingMessageIDKey, msg.ID),
		zap.Int(constvars.LoggingFailedCountKey, msg.FailedCount),
	)
}

func (w *Worker) recordOutcome(ctx context.Context, event *models.RoomEvent, outcome models.DeliveryOutcome) {
	if w.deliveryLog == nil {
		return
	}
	record := &models.DeliveryRecord{
		ID:         uuid.NewString(),
		EventID:    event.EventID,
		RoomID:     event.RoomID,
		UserID:     event.UserID,
		EventType:  event.EventName,
		Mode:       constvars.DeliveryModeQueue,
		Delivered:  outcome.Delivered,
		Attempts:   outcome.Attempts,
		StatusCode: outcome.StatusCode,
		LastError:  outcome.LastError,
		CreatedAt:  time.Now().UTC(),
	}
	if err := w.deliveryLog.Insert(ctx, record); err != nil {
		w.log.Error("delivery worker could not persist delivery record",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
	}
}
