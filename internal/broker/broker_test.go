package broker_test

import (
	"testing"
	"time"

	"vrpls/internal/broker"
)

func TestMemoryPublishSubscribe(t *testing.T) {
	b := broker.NewMemory()
	runID := "run-1"
	ch := b.Subscribe(runID)

	evt := broker.RoundEvent{RunID: runID, Round: 1, Family: "relocate", Gain: 40, TotalCost: 960, UnassignedCount: 0}
	b.Publish(runID, evt)

	select {
	case got := <-ch:
		if got.Family != evt.Family || got.Gain != evt.Gain {
			t.Fatalf("got %+v, want %+v", got, evt)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}

	b.Unsubscribe(runID, ch)
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("channel should be closed after unsubscribe")
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryPublishWithNoSubscribersIsNoOp(t *testing.T) {
	b := broker.NewMemory()
	b.Publish("nobody-listening", broker.RoundEvent{Round: 1})
}
