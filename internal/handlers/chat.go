package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
	"github.com/freelancelocal/freelancelocal-be/internal/realtime"
	"github.com/freelancelocal/freelancelocal-be/internal/utils"
)

type ChatHandler struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	RDB       *redis.Client
	JWTSecret string
}

func NewChatHandler(db *gorm.DB, hub *realtime.Hub, rdb *redis.Client, jwtSecret string) *ChatHandler {
	return &ChatHandler{DB: db, Hub: hub, RDB: rdb, JWTSecret: jwtSecret}
}

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

type PartnerMini struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type RecentChat struct {
	Partner     PartnerMini     `json:"partner"`
	LastMessage MessageResponse `json:"last_message"`
}

// recentPartnerMessages walks messages (newest first) and keeps the first
// message seen per counterpart, preserving recency order.
func recentPartnerMessages(messages []models.Message, self uuid.UUID) []models.Message {
	seen := map[uuid.UUID]bool{}
	var out []models.Message
	for _, m := range messages {
		partner := m.SenderID
		if partner == self {
			partner = m.ReceiverID
		}
		if seen[partner] {
			continue
		}
		seen[partner] = true
		out = append(out, m)
	}
	return out
}

// GetConversations derives the recent-conversation list from the messages
// relation: one entry per counterpart, newest message first.
func (h *ChatHandler) GetConversations(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var messages []models.Message
	if err := h.DB.
		Where("sender_id = ? OR receiver_id = ?", userUUID, userUUID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		log.Println("Error fetching conversations:", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to fetch conversations"})
	}

	recent := recentPartnerMessages(messages, userUUID)

	partnerIDs := make([]uuid.UUID, 0, len(recent))
	for _, m := range recent {
		partner := m.SenderID
		if partner == userUUID {
			partner = m.ReceiverID
		}
		partnerIDs = append(partnerIDs, partner)
	}

	var profiles []models.Profile
	if len(partnerIDs) > 0 {
		if err := h.DB.
			Select("id", "name", "bio").
			Where("id IN ?", partnerIDs).
			Find(&profiles).Error; err != nil {
			log.Println("Error fetching chat partners:", err)
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to fetch conversations"})
		}
	}
	byID := make(map[uuid.UUID]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]RecentChat, 0, len(recent))
	for _, m := range recent {
		partnerID := m.SenderID
		if partnerID == userUUID {
			partnerID = m.ReceiverID
		}
		p, ok := byID[partnerID]
		if !ok {
			continue
		}
		out = append(out, RecentChat{
			Partner:     PartnerMini{ID: p.ID.String(), Name: p.Name, Bio: p.Bio},
			LastMessage: toMessageResponse(m),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

// pairHistory loads the full conversation between two users, ascending by
// creation time.
func (h *ChatHandler) pairHistory(a, b uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := h.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			a, b, b, a).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetMessages returns the history with one partner: ?with=<partner id>.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	partnerUUID, err := uuid.Parse(c.Query("with"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid partner ID",
		})
	}

	messages, err := h.pairHistory(userUUID, partnerUUID)
	if err != nil {
		log.Println("Error fetching messages:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch messages",
		})
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, toMessageResponse(msg))
	}

	return c.JSON(fiber.Map{"success": true, "data": responses})
}

type SendMessageReq struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// SendMessage writes one immutable message row and pushes it to both
// parties' live connections. Whitespace-only content is a no-op rejection.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Message content is required",
		})
	}

	receiverUUID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid receiver ID",
		})
	}
	if receiverUUID == userUUID {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Cannot message yourself",
		})
	}

	var receiver models.Profile
	if err := h.DB.Select("id").First(&receiver, "id = ?", receiverUUID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Receiver not found",
		})
	}

	msg := models.Message{
		SenderID:   userUUID,
		ReceiverID: receiverUUID,
		Content:    content,
	}

	if err := h.DB.Create(&msg).Error; err != nil {
		log.Println("Error creating message:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send message",
		})
	}

	msgResp := toMessageResponse(msg)

	// live delivery to every connection of either party
	h.Hub.SendToPair(msg.SenderID, msg.ReceiverID, fiber.Map{
		"type":    "new_message",
		"message": msgResp,
	})

	// offline notification channel for the recipient
	notif := map[string]interface{}{
		"type":      "chat_message",
		"sender_id": userUUID.String(),
		"content":   content,
	}
	payload, _ := json.Marshal(notif)
	h.RDB.Publish(context.Background(), "notifications:"+receiverUUID.String(), payload)

	return c.JSON(fiber.Map{"success": true, "data": msgResp})
}

// wsEvent is the minimal shape the writer loop needs to dedupe backfilled
// messages against live delivery.
type wsEvent struct {
	Type    string `json:"type"`
	Message struct {
		ID string `json:"id"`
	} `json:"message"`
}

// dropBackfilled reports whether a live event repeats a message already sent
// in the history backfill. Each backfilled ID is dropped at most once; every
// other event passes through.
func dropBackfilled(backfilled map[string]bool, raw []byte) bool {
	var ev wsEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return false
	}
	if ev.Type != "new_message" || !backfilled[ev.Message.ID] {
		return false
	}
	delete(backfilled, ev.Message.ID)
	return true
}

// WebSocketHandler authenticates via the token query param, registers on
// the hub, then backfills history. Registration happens BEFORE the history
// query so no message falls into the handoff gap; IDs already sent in the
// backfill are dropped from live delivery.
func (h *ChatHandler) WebSocketHandler(c *websocket.Conn) {
	claims, err := utils.ParseJWT(h.JWTSecret, c.Query("token"))
	if err != nil {
		log.Println("WebSocket: invalid token:", err)
		c.Close()
		return
	}

	userUUID, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.Println("WebSocket: invalid user id in token:", err)
		c.Close()
		return
	}

	partnerUUID := uuid.Nil
	if with := c.Query("with"); with != "" {
		partnerUUID, err = uuid.Parse(with)
		if err != nil {
			log.Println("WebSocket: invalid partner id:", with)
			c.Close()
			return
		}
	}

	client := &realtime.Client{
		ID:        uuid.New().String(),
		UserID:    userUUID,
		PartnerID: partnerUUID,
		Conn:      realtime.NewWebSocketConn(c),
		Send:      make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Printf("WebSocket: user %s disconnected\n", userUUID)
	}()

	// backfill after subscribing; anything inserted meanwhile sits in the
	// Send buffer and gets deduped below
	backfilled := map[string]bool{}
	if partnerUUID != uuid.Nil {
		history, err := h.pairHistory(userUUID, partnerUUID)
		if err != nil {
			log.Println("WebSocket: history load failed:", err)
			c.Close()
			return
		}

		responses := make([]MessageResponse, 0, len(history))
		for _, m := range history {
			responses = append(responses, toMessageResponse(m))
			backfilled[m.ID.String()] = true
		}

		if err := client.Conn.WriteJSON(fiber.Map{"type": "history", "messages": responses}); err != nil {
			log.Println("WebSocket: history write failed:", err)
			return
		}
	}

	go func() {
		for raw := range client.Send {
			if dropBackfilled(backfilled, raw) {
				continue
			}
			if err := client.Conn.WriteText(raw); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// read loop keeps the connection alive
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}

		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}
