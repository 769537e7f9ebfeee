// Package notify отправляет уведомления о новых заказах в Telegram.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/amstore/amstore-system/internal/model"
)

// Dispatcher описывает контракт рассылки уведомлений о заказе.
// Успех означает, что хотя бы один получатель подтвердил доставку.
type Dispatcher interface {
	Dispatch(ctx context.Context, order model.Order) bool
}

// TelegramDispatcher рассылает сводку заказа по списку чатов через
// Telegram Bot API. Ошибки транспорта не поднимаются наверх: результат
// всегда сводится к булеву признаку.
type TelegramDispatcher struct {
	apiURL     string
	chatIDs    []string
	httpClient *retryablehttp.Client
	logger     *zap.Logger
}

// NewTelegramDispatcher создаёт диспетчер для бота с указанным токеном
// и списком чатов-получателей.
func NewTelegramDispatcher(botToken string, chatIDs []string, logger *zap.Logger) *TelegramDispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil

	return &TelegramDispatcher{
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken),
		chatIDs:    chatIDs,
		httpClient: client,
		logger:     logger,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Dispatch отправляет сводку заказа всем получателям и возвращает true,
// если хотя бы один из вызовов завершился успешно.
func (d *TelegramDispatcher) Dispatch(ctx context.Context, order model.Order) bool {
	if len(d.chatIDs) == 0 {
		return false
	}

	text := FormatOrderMessage(order)

	ok := false
	for _, chatID := range d.chatIDs {
		if d.send(ctx, chatID, text) {
			ok = true
		}
	}

	if !ok {
		d.logger.Warn("order notification failed for all recipients",
			zap.String("order", order.ID),
			zap.Int("recipients", len(d.chatIDs)),
		)
	}

	return ok
}

func (d *TelegramDispatcher) send(ctx context.Context, chatID, text string) bool {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return false
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Warn("send telegram message", zap.String("chat", chatID), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// FormatOrderMessage готовит человекочитаемую сводку заказа для отправки.
func FormatOrderMessage(order model.Order) string {
	return fmt.Sprintf(`🔔 *طلب جديد من AM Store*
-----------------------------
👤 *الزبون:* %s
📞 *الهاتف:* %s
📍 *الولاية:* %s
🏙️ *البلدية:* %s
-----------------------------
⌚ *المنتج:* %s
💰 *الإجمالي:* %d دج
-----------------------------
📅 التاريخ: %s`,
		order.CustomerName,
		order.Phone,
		order.Wilaya,
		order.Baladiya,
		order.ProductName,
		order.TotalPrice,
		order.Date,
	)
}
