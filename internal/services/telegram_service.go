package services

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService mirrors notifications to users who linked a Telegram chat.
// Optional: a nil service is a no-op.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}
