package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

func msg(sender, receiver uuid.UUID, at time.Time) models.Message {
	return models.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		CreatedAt:  at,
	}
}

func TestRecentPartnerMessages_OnePerPartner(t *testing.T) {
	self := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	now := time.Now()
	// newest first, as the query returns them
	messages := []models.Message{
		msg(alice, self, now),
		msg(self, bob, now.Add(-time.Minute)),
		msg(self, alice, now.Add(-2*time.Minute)),
		msg(bob, self, now.Add(-3*time.Minute)),
	}

	recent := recentPartnerMessages(messages, self)

	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].ID != messages[0].ID {
		t.Error("expected alice's newest message first")
	}
	if recent[1].ID != messages[1].ID {
		t.Error("expected bob's newest message second")
	}
}

func TestRecentPartnerMessages_Empty(t *testing.T) {
	if got := recentPartnerMessages(nil, uuid.New()); len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}

func TestSendMessage_WhitespaceOnlyIsNoOp(t *testing.T) {
	// nil DB: the rejection must happen before any write is attempted
	h := &ChatHandler{}

	app := fiber.New()
	app.Post("/messages", func(c *fiber.Ctx) error {
		c.Locals("userId", uuid.New().String())
		return h.SendMessage(c)
	})

	for _, content := range []string{"", "   ", "\n\t "} {
		body := `{"receiver_id":"` + uuid.New().String() + `","content":` + jsonString(content) + `}`
		req := httptest.NewRequest("POST", "/messages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("content %q: expected 400, got %d", content, resp.StatusCode)
		}
	}
}

func jsonString(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}

func liveEvent(id string) []byte {
	return []byte(`{"type":"new_message","message":{"id":"` + id + `"}}`)
}

func TestDropBackfilled_DropsHistoryIDOnce(t *testing.T) {
	id := uuid.New().String()
	backfilled := map[string]bool{id: true}

	if !dropBackfilled(backfilled, liveEvent(id)) {
		t.Fatal("live echo of a backfilled message must be dropped")
	}
	// the ID is spent: a later event with the same ID is a genuine delivery
	if dropBackfilled(backfilled, liveEvent(id)) {
		t.Error("a backfilled ID must only be dropped once")
	}
}

func TestDropBackfilled_FreshMessagePasses(t *testing.T) {
	backfilled := map[string]bool{uuid.New().String(): true}

	if dropBackfilled(backfilled, liveEvent(uuid.New().String())) {
		t.Error("a message outside the backfill must be delivered")
	}
	if len(backfilled) != 1 {
		t.Error("unrelated delivery must not consume the backfill set")
	}
}

func TestDropBackfilled_IgnoresOtherEventTypes(t *testing.T) {
	id := uuid.New().String()
	backfilled := map[string]bool{id: true}

	raw := []byte(`{"type":"presence","message":{"id":"` + id + `"}}`)
	if dropBackfilled(backfilled, raw) {
		t.Error("only new_message events participate in deduplication")
	}
	if dropBackfilled(backfilled, []byte("not json")) {
		t.Error("malformed payloads must pass through untouched")
	}
}

func TestBelongsToPair(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	other := uuid.New()

	m := models.Message{SenderID: a, ReceiverID: b}

	if !m.BelongsToPair(a, b) || !m.BelongsToPair(b, a) {
		t.Error("pair membership must be direction-independent")
	}
	if m.BelongsToPair(a, other) {
		t.Error("message must not match a pair it is not part of")
	}
}
