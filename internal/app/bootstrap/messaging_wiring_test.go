package bootstrap

import (
	"context"
	"testing"
	"time"

	"electoral/contexts/civic-governance/election-authority/application/commands"
	contractsv1 "electoral/contracts/gen/events/v1"
	"electoral/internal/platform/config"
	"electoral/internal/platform/messaging"
)

func TestBuildPublisherDefaultsToInProcessBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, closePublisher, err := buildPublisher(ctx, config.Config{}, nil)
	if err != nil {
		t.Fatalf("build publisher: %v", err)
	}
	defer closePublisher()

	bus, ok := publisher.(*messaging.Bus)
	if !ok {
		t.Fatalf("expected in-process bus, got %T", publisher)
	}
	received := make(chan contractsv1.Envelope, 1)
	bus.Subscribe(ctx, commands.EventVoteCast, func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	})
	if err := bus.Publish(ctx, commands.EventVoteCast, contractsv1.Envelope{EventID: "evt-1", EventType: commands.EventVoteCast}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case event := <-received:
		if event.EventID != "evt-1" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber did not receive the event")
	}
}
