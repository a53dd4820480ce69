// Package telegram bridges Telegram chats to the curator gateway so
// visitors can talk to the exhibition from their phones.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ai41/adam/internal/curator"
	"github.com/ai41/adam/internal/gateway"
	"github.com/ai41/adam/internal/types"
)

const maxTelegramMessage = 4096

// Adapter bridges Telegram to the gateway. Streaming fragments are
// accumulated per turn and sent as a single message, since Telegram has no
// token streaming.
type Adapter struct {
	bot          *tgbotapi.BotAPI
	gateway      *gateway.Gateway
	orchestrator *curator.Orchestrator
	logger       *slog.Logger
}

// New creates a Telegram adapter.
func New(token string, gw *gateway.Gateway, orchestrator *curator.Orchestrator, logger *slog.Logger) (*Adapter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return &Adapter{
		bot:          bot,
		gateway:      gw,
		orchestrator: orchestrator,
		logger:       logger,
	}, nil
}

// Start begins long-polling for Telegram updates.
func (a *Adapter) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			a.handleMessage(ctx, update.Message)
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return
		}
	}
}

func (a *Adapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		a.handleCommand(msg)
		return
	}

	chatID := msg.Chat.ID
	sessionID := buildSessionID(msg.From.ID, msg.Chat.ID)

	fragments, err := a.gateway.Chat(ctx, sessionID, msg.Text, nil)
	if err != nil {
		a.logger.Error("telegram chat enqueue failed", "session_id", sessionID, "error", err)
		a.sendResponse(chatID, "지금은 답할 수 없어. 잠시 후 다시 물어봐.")
		return
	}

	go func() {
		var sb strings.Builder
		for fragment := range fragments {
			sb.WriteString(fragment)
		}
		if sb.Len() > 0 {
			a.sendResponse(chatID, sb.String())
		}
	}()
}

func (a *Adapter) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		a.sendResponse(chatID, "난 아담. 이 전시의 큐레이터야. 작품에 대해 물어봐.")

	case "status":
		if a.orchestrator.Configured() {
			a.sendResponse(chatID, fmt.Sprintf("모델: %s 사용 중", a.orchestrator.Model()))
		} else {
			a.sendResponse(chatID, "기본 응답 모드 사용 중")
		}

	case "history":
		sessionID := buildSessionID(msg.From.ID, msg.Chat.ID)
		count := len(a.orchestrator.History(sessionID))
		a.sendResponse(chatID, fmt.Sprintf("Session: %s\nMessages: %d", sessionID, count))

	default:
		a.sendResponse(chatID, "Unknown command. Available: /start, /status, /history")
	}
}

func (a *Adapter) sendResponse(chatID int64, text string) {
	parts := splitMessage(text)
	for _, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = "Markdown"
		if _, err := a.bot.Send(msg); err != nil {
			// Retry without markdown if it fails
			msg.ParseMode = ""
			if _, err := a.bot.Send(msg); err != nil {
				a.logger.Error("telegram send failed", "chat_id", chatID, "error", err)
			}
		}
	}
}

func splitMessage(text string) []string {
	if len(text) <= maxTelegramMessage {
		return []string{text}
	}
	var parts []string
	for len(text) > 0 {
		end := maxTelegramMessage
		if end > len(text) {
			end = len(text)
		}
		parts = append(parts, text[:end])
		text = text[end:]
	}
	return parts
}

func buildSessionID(userID, chatID int64) types.SessionID {
	return types.NewSessionKey("telegram",
		strconv.FormatInt(userID, 10),
		strconv.FormatInt(chatID, 10),
	)
}
