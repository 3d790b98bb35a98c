package realtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestWantsMessage_UnrelatedUser(t *testing.T) {
	self := uuid.New()
	a := uuid.New()
	b := uuid.New()

	c := &Client{UserID: self}
	if c.WantsMessage(a, b) {
		t.Error("connection must not receive messages between other users")
	}
}

func TestWantsMessage_UnscopedReceivesBothDirections(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	c := &Client{UserID: self}
	if !c.WantsMessage(self, other) {
		t.Error("expected delivery of outbound message")
	}
	if !c.WantsMessage(other, self) {
		t.Error("expected delivery of inbound message")
	}
}

func TestRegisterClient_VisibleImmediately(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	client := &Client{ID: "c1", UserID: user, Send: make(chan []byte, 1)}
	hub.RegisterClient(client)

	// no goroutine in between: fan-out right after RegisterClient returns
	// must already see the connection
	hub.SendToUser(user, map[string]string{"type": "ping"})

	select {
	case <-client.Send:
	default:
		t.Fatal("client registered but not reachable by SendToUser")
	}
}

func TestSendToPair_RespectsPairFilter(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	bobAll := &Client{ID: "bob-all", UserID: bob, Send: make(chan []byte, 1)}
	bobWithCarol := &Client{ID: "bob-carol", UserID: bob, PartnerID: carol, Send: make(chan []byte, 1)}
	carolConn := &Client{ID: "carol", UserID: carol, Send: make(chan []byte, 1)}
	hub.RegisterClient(bobAll)
	hub.RegisterClient(bobWithCarol)
	hub.RegisterClient(carolConn)

	hub.SendToPair(alice, bob, map[string]string{"type": "new_message"})

	if len(bobAll.Send) != 1 {
		t.Error("unscoped connection of a party should receive the message")
	}
	if len(bobWithCarol.Send) != 0 {
		t.Error("connection scoped to another partner must not receive the message")
	}
	if len(carolConn.Send) != 0 {
		t.Error("uninvolved user must not receive the message")
	}
}

func TestUnregisterClient_ClosesSend(t *testing.T) {
	hub := NewHub()
	client := &Client{ID: "c1", UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.RegisterClient(client)
	hub.UnregisterClient(client)

	if _, open := <-client.Send; open {
		t.Error("Send channel should be closed after unregister")
	}

	// second unregister is a no-op, no double close
	hub.UnregisterClient(client)

	hub.SendToUser(client.UserID, map[string]string{"type": "ping"})
}

func TestWantsMessage_PairScopedFiltersOtherPartners(t *testing.T) {
	self := uuid.New()
	partner := uuid.New()
	stranger := uuid.New()

	c := &Client{UserID: self, PartnerID: partner}

	if !c.WantsMessage(partner, self) {
		t.Error("expected delivery from the scoped partner")
	}
	if !c.WantsMessage(self, partner) {
		t.Error("expected delivery of own message to the scoped partner")
	}
	if c.WantsMessage(stranger, self) {
		t.Error("message from a different partner must be filtered out")
	}
}
