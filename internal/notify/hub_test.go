package notify

import (
	"encoding/json"
	"testing"
)

func TestHubBroadcastTargetsOneProfile(t *testing.T) {
	hub := NewHub()

	target := make(Client, 1)
	bystander := make(Client, 1)
	hub.Subscribe(1, target)
	hub.Subscribe(2, bystander)

	hub.Broadcast(NewEvent(FriendRequested, 1, nil))

	select {
	case raw := <-target:
		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			t.Fatalf("failed to decode broadcast: %v", err)
		}
		if event.Type != FriendRequested {
			t.Errorf("event type is %q, want %q", event.Type, FriendRequested)
		}
	default:
		t.Fatal("target client received nothing")
	}

	select {
	case <-bystander:
		t.Fatal("bystander received another profile's event")
	default:
	}
}

func TestHubDropsWhenClientIsFull(t *testing.T) {
	hub := NewHub()

	client := make(Client, 1)
	hub.Subscribe(1, client)

	// The second broadcast finds the buffer full and must not block.
	hub.Broadcast(NewEvent(FriendRequested, 1, nil))
	hub.Broadcast(NewEvent(FriendAccepted, 1, nil))

	if got := len(client); got != 1 {
		t.Fatalf("client buffer holds %d messages, want 1", got)
	}
}

func TestHubUnsubscribeClosesClient(t *testing.T) {
	hub := NewHub()

	client := make(Client, 1)
	hub.Subscribe(1, client)
	hub.Unsubscribe(1, client)

	if _, open := <-client; open {
		t.Fatal("client channel still open after unsubscribe")
	}

	// Broadcasting to a profile with no clients is a no-op.
	hub.Broadcast(NewEvent(FriendRequested, 1, nil))
}
