package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageOptions carries the presentation payload of an outgoing message.
type MessageOptions struct {
	Keyboard       [][]string
	OneTime        bool
	RemoveKeyboard bool
	Markdown       bool
}

// Transport is the outbound half of the chat connection. The FSM depends on
// this interface so tests can record messages instead of hitting Telegram.
type Transport interface {
	SendMessage(chatID int64, text string, opts MessageOptions) error
	SendPhoto(chatID int64, photo []byte, caption string) error
}

type apiTransport struct {
	api *tgbotapi.BotAPI
}

func NewTransport(api *tgbotapi.BotAPI) Transport {
	return &apiTransport{api: api}
}

func (t *apiTransport) SendMessage(chatID int64, text string, opts MessageOptions) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if opts.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	switch {
	case opts.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	case len(opts.Keyboard) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(opts.Keyboard))
		for _, row := range opts.Keyboard {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, buttons)
		}
		keyboard := tgbotapi.NewReplyKeyboard(rows...)
		keyboard.OneTimeKeyboard = opts.OneTime
		msg.ReplyMarkup = keyboard
	}
	_, err := t.api.Send(msg)
	return err
}

func (t *apiTransport) SendPhoto(chatID int64, photo []byte, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "ticket.png", Bytes: photo})
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.api.Send(msg)
	return err
}
