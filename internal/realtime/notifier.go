package realtime

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RunNotifier bridges Redis chat notifications onto the hub: a notification
// published on notifications:<user id> — by this instance or another one —
// reaches every live connection of that user. Blocks until ctx is done.
func RunNotifier(ctx context.Context, rdb *redis.Client, hub *Hub) {
	sub := rdb.PSubscribe(ctx, "notifications:*")
	defer sub.Close()

	for msg := range sub.Channel() {
		userID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, "notifications:"))
		if err != nil {
			log.Println("Notifier: invalid channel:", msg.Channel)
			continue
		}

		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Println("Notifier: invalid payload:", err)
			continue
		}

		hub.SendToUser(userID, payload)
	}
}
