package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NotificationSink delivers a user-facing notice for a leave lifecycle
// event. Delivery is fire-and-forget: correctness of the leave workflow
// never depends on it.
type NotificationSink interface {
	Notify(ctx context.Context, eventType, employeeID, message string) error
}

type logNotificationSink struct {
	logger *zap.Logger
}

func NewLogNotificationSink(logger *zap.Logger) NotificationSink {
	return &logNotificationSink{logger: logger.Named("notification.sink")}
}

func (s *logNotificationSink) Notify(ctx context.Context, eventType, employeeID, message string) error {
	s.logger.Info("notification delivered",
		zap.String("event_type", eventType),
		zap.String("employee_id", employeeID),
		zap.String("message", message),
	)
	return nil
}

func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	sink NotificationSink,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")

		employeeID, message, err := buildNotification(eventType, msg.Value)
		if err != nil {
			log.Error("decode leave lifecycle event failed",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sink.Notify(ctx, eventType, employeeID, message); err != nil {
			log.Error("notification delivery failed",
				zap.String("event_type", eventType),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildNotification(eventType string, payload []byte) (string, string, error) {
	switch eventType {
	case events.LeaveRequestedEventType:
		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return "", "", err
		}
		return event.EmployeeID,
			"Your " + event.LeaveType + " leave request (" + event.StartDate + " to " + event.EndDate + ") was submitted",
			nil
	default:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return "", "", err
		}
		message := "Your leave request is now " + event.Status
		if event.RejectionReason != "" {
			message += ": " + event.RejectionReason
		}
		return event.EmployeeID, message, nil
	}
}
