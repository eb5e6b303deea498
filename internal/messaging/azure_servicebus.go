package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/config"
)

// ApprovalEvent is published on every terminal or escalating approval
// transition so back-office consumers can react without polling.
type ApprovalEvent struct {
	Kind           string    `json:"kind"` // approval.approved, approval.rejected, approval.escalated
	DeliveryNoteID string    `json:"delivery_note_id"`
	DeliveryNumber string    `json:"delivery_number"`
	Division       string    `json:"division"`
	LevelName      string    `json:"level_name,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ServiceBusClient is an interface for Azure Service Bus operations
type ServiceBusClient interface {
	PublishApprovalEvent(ctx context.Context, event ApprovalEvent) error
	Close() error
}

// serviceBusClient implements the ServiceBusClient interface
type serviceBusClient struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	queueName string
}

// mockServiceBusClient is a mock implementation for local development
type mockServiceBusClient struct{}

// NewServiceBusClient creates a new Azure Service Bus client
func NewServiceBusClient(cfg config.ServiceBusConfig) (ServiceBusClient, error) {
	if cfg.ConnectionString == "" {
		return &mockServiceBusClient{}, nil
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus client: %w", err)
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus sender: %w", err)
	}

	return &serviceBusClient{
		client:    client,
		sender:    sender,
		queueName: cfg.QueueName,
	}, nil
}

func (s *serviceBusClient) PublishApprovalEvent(ctx context.Context, event ApprovalEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal approval event: %w", err)
	}

	msg := &azservicebus.Message{
		Body: data,
		ApplicationProperties: map[string]interface{}{
			"kind": event.Kind,
			"time": time.Now().UTC().Format(time.RFC3339),
		},
	}

	return s.sender.SendMessage(ctx, msg, nil)
}

func (s *serviceBusClient) Close() error {
	if s.sender != nil {
		if err := s.sender.Close(context.Background()); err != nil {
			return err
		}
	}
	if s.client != nil {
		return s.client.Close(context.Background())
	}
	return nil
}

func (m *mockServiceBusClient) PublishApprovalEvent(ctx context.Context, event ApprovalEvent) error {
	log.Debug().
		Str("kind", event.Kind).
		Str("delivery_number", event.DeliveryNumber).
		Msg("mock service bus: event not published")
	return nil
}

func (m *mockServiceBusClient) Close() error {
	return nil
}
