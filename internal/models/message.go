// internal/models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. A conversation is the set of messages
// whose unordered {sender,receiver} pair matches, ordered by created_at.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;index;not null" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Sender   *Profile `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *Profile `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// BelongsToPair reports whether the message is part of the conversation
// between a and b, whichever direction it was sent.
func (m Message) BelongsToPair(a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) ||
		(m.SenderID == b && m.ReceiverID == a)
}
