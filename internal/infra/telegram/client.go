// internal/infra/telegram/client.go
package telegram

import (
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain Client interface using gopkg.in/telebot.v3.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends text to a chat. Staff reports may go to a group chat, so
// the recipient is addressed as a chat rather than a user.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}
	// Deep links would otherwise expand into large previews.
	options.DisableWebPagePreview = true
	_, err := tba.bot.Send(telebot.ChatID(recipientChatID), text, options)
	return err
}
