// FILE: internal/service/analytics_service.go
package service

import (
	"context"

	"stack-navigator-be/internal/pkg/logger"
	"stack-navigator-be/pkg/events"

	pktNats "stack-navigator-be/pkg/nats"
)

type IAnalyticsService interface {
	Start() error
}

// analyticsService drains the NATS analytics stream into the system log,
// which is what the admin activity screen reads from.
type analyticsService struct {
	subscriber *pktNats.Subscriber
	sysLogger  logger.ILogger
}

func NewAnalyticsService(subscriber *pktNats.Subscriber, sysLogger logger.ILogger) IAnalyticsService {
	return &analyticsService{
		subscriber: subscriber,
		sysLogger:  sysLogger,
	}
}

func (s *analyticsService) Start() error {
	return s.subscriber.Subscribe("analytics.>", "stack-navigator-analytics", s.handleEvent)
}

func (s *analyticsService) handleEvent(ctx context.Context, event events.Event) error {
	s.sysLogger.Info("analytics", event.EventType(), event.Payload())
	return nil
}
