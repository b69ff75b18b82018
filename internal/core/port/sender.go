package port

import "context"

// MessageSender delivers replies and manages reaction affordances on the
// messaging platform. Calls can fail with domain.ErrForbidden when the bot
// lost the needed permission; other errors are transient.
type MessageSender interface {
	// SendMessage posts text to a channel and returns the id of the created message.
	SendMessage(ctx context.Context, channelID int64, text string) (int64, error)
	// SendMessageReply posts text as a reply to an existing message and returns the id of the created message.
	SendMessageReply(ctx context.Context, channelID int64, replyToID int64, text string) (int64, error)
	// EditMessage replaces the text of a message previously sent by the bot.
	EditMessage(ctx context.Context, channelID int64, messageID int64, text string) error
	// AddReaction adds the bot's reaction to a message.
	AddReaction(ctx context.Context, channelID int64, messageID int64, emoji string) error
	// RemoveOwnReaction removes the bot's own reaction from a message.
	RemoveOwnReaction(ctx context.Context, channelID int64, messageID int64, emoji string) error
	// RemoveAllReactions removes every reaction from a message.
	RemoveAllReactions(ctx context.Context, channelID int64, messageID int64) error
}
