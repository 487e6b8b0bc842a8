package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/pkg/logger"
)

// TelegramNotifier delivers outcomes as Telegram messages to the
// chat ID stored on the queue entry.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram notifier ready", "bot", bot.Self.UserName)
	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) NotifyMatched(entry models.QueueEntry, pairing models.Pairing) {
	partnerID := pairing.UserBID
	if partnerID == entry.UserID {
		partnerID = pairing.UserAID
	}

	text := fmt.Sprintf("✅ We found you a partner!\n\nCompatibility: %d/100\nYour chat will open shortly.", pairing.Score)
	n.send(entry, text, "matched", "partner_id", partnerID)
}

func (n *TelegramNotifier) NotifyUnmatched(entry models.QueueEntry) {
	text := "🔍 No partner this round — you're still in line for the next one."
	n.send(entry, text, "unmatched")
}

func (n *TelegramNotifier) send(entry models.QueueEntry, text, kind string, extra ...interface{}) {
	msg := tgbotapi.NewMessage(entry.TelegramID, text)
	if _, err := n.bot.Send(msg); err != nil {
		fields := append([]interface{}{"user_id", entry.UserID, "kind", kind, "error", err}, extra...)
		logger.Error("Failed to send notification", fields...)
	}
}
