package websocket

import (
	"encoding/json"
	"time"

	"github.com/fexraizen/lister-sub001/pkg/logger"
)

// notification is the payload pushed to connected users.
type notification struct {
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// PushNotifier delivers best-effort notifications over active WebSocket
// connections. Delivery failures are logged and never surfaced to callers;
// a settled purchase stays settled whether or not anyone was listening.
type PushNotifier struct {
	manager *Manager
}

func NewPushNotifier(manager *Manager) *PushNotifier {
	return &PushNotifier{
		manager: manager,
	}
}

func (n *PushNotifier) Notify(userID, title, message string) {
	payload, err := json.Marshal(notification{
		Type:    "notification",
		Title:   title,
		Message: message,
		SentAt:  time.Now(),
	})
	if err != nil {
		logger.Error("Failed to encode notification for %s: %v", userID, err)
		return
	}

	if !n.manager.SendToUser(userID, payload) {
		logger.Info("Notification for %s dropped, no active connection", userID)
	}
}

func (n *PushNotifier) NotifyBulk(userIDs []string, title, message string) {
	for _, userID := range userIDs {
		n.Notify(userID, title, message)
	}
}
