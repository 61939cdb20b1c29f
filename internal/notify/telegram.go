package notify

import (
	"context"
	"fmt"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TelegramNotifier pings a staff chat for every admitted reservation.
// Delivery failures are logged and never surfaced to the visitor.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) ReservationConfirmed(ctx context.Context, res *model.Reservation, slot *model.ScheduleSlot, disciplineName string) {
	text := fmt.Sprintf(
		"Nueva reserva #%d\n%s — %s %s\n%s %s, DNI %s",
		res.ID,
		disciplineName,
		res.ClassDate.Format("2006-01-02"),
		slot.StartTime,
		res.FirstName, res.LastName, res.DNI,
	)

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send reservation notification",
			zap.Int64("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}
