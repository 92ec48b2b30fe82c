package telegram

import "gopkg.in/telebot.v3"

// Client sends messages to staff chats. Absence notices for guardians are
// never sent through it; staff receive the prepared deep links instead.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
