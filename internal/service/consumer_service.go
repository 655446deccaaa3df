// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/repository/unitofwork"
	"stack-navigator-be/internal/websocket"

	"stack-navigator-be/pkg/events"
	pktNats "stack-navigator-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the generation topic: each message becomes a
// persisted GenerationRecord, a websocket push and an analytics event.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	hub            *websocket.Hub
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		hub:            hub,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerationCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal generation message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	record := &entity.GenerationRecord{
		Id:          uuid.New(),
		UserId:      payload.UserId,
		ProjectName: payload.ProjectName,
		Stack:       payload.Stack,
		ArchiveSize: payload.ArchiveSize,
		CreatedAt:   time.Now(),
	}

	if err := uow.GenerationRepository().Create(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to persist generation record for user %s: %v", payload.UserId, err)
		msg.Nack() // retriable
		return
	}

	if cs.hub != nil {
		cs.hub.Send(payload.UserId, websocket.Notification{
			Kind:  "generation_done",
			Title: "Starter project ready",
			Body:  fmt.Sprintf("%s has been generated.", payload.ProjectName),
			Data: map[string]interface{}{
				"project_name": payload.ProjectName,
				"archive_size": payload.ArchiveSize,
			},
		})
	}

	if cs.eventPublisher != nil {
		evt := events.NewProjectGenerated(payload.UserId.String(), payload.ProjectName, int64(payload.ArchiveSize))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish PROJECT_GENERATED event: %v", err)
		}
	}

	msg.Ack()
}
