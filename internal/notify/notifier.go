package notify

import (
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/pkg/logger"
)

// Notifier delivers match-round outcomes to users. Delivery is
// fire-and-forget: implementations log failures and never return
// them, so a broken channel cannot abort a matching pass.
type Notifier interface {
	NotifyMatched(entry models.QueueEntry, pairing models.Pairing)
	NotifyUnmatched(entry models.QueueEntry)
}

// LogNotifier is the fallback used when no delivery channel is
// configured. It only records the outcome in the log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyMatched(entry models.QueueEntry, pairing models.Pairing) {
	logger.Info("User matched",
		"user_id", entry.UserID,
		"pairing_id", pairing.ID,
		"score", pairing.Score)
}

func (n *LogNotifier) NotifyUnmatched(entry models.QueueEntry) {
	logger.Info("User unmatched this round", "user_id", entry.UserID)
}
