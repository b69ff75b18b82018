package discord

import (
	"context"
	"fmt"
	"net/http"

	"wavebot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type Sender struct {
	session *discordgo.Session
}

func NewSender(session *discordgo.Session) *Sender {
	return &Sender{session: session}
}

func (s *Sender) SendMessage(ctx context.Context, channelID int64, text string) (int64, error) {
	msg, err := s.session.ChannelMessageSend(formatSnowflake(channelID), text,
		discordgo.WithContext(ctx))
	if err != nil {
		return 0, wrapRESTError(err)
	}

	return parseSnowflake(msg.ID), nil
}

func (s *Sender) SendMessageReply(ctx context.Context, channelID, replyToID int64, text string) (int64, error) {
	ref := &discordgo.MessageReference{
		MessageID: formatSnowflake(replyToID),
		ChannelID: formatSnowflake(channelID),
	}

	msg, err := s.session.ChannelMessageSendReply(formatSnowflake(channelID), text, ref,
		discordgo.WithContext(ctx))
	if err != nil {
		return 0, wrapRESTError(err)
	}

	return parseSnowflake(msg.ID), nil
}

func (s *Sender) EditMessage(ctx context.Context, channelID, messageID int64, text string) error {
	_, err := s.session.ChannelMessageEdit(formatSnowflake(channelID), formatSnowflake(messageID), text,
		discordgo.WithContext(ctx))

	return wrapRESTError(err)
}

func (s *Sender) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	err := s.session.MessageReactionAdd(formatSnowflake(channelID), formatSnowflake(messageID), emoji,
		discordgo.WithContext(ctx))

	return wrapRESTError(err)
}

func (s *Sender) RemoveOwnReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	err := s.session.MessageReactionRemove(formatSnowflake(channelID), formatSnowflake(messageID), emoji,
		"@me", discordgo.WithContext(ctx))

	return wrapRESTError(err)
}

func (s *Sender) RemoveAllReactions(ctx context.Context, channelID, messageID int64) error {
	err := s.session.MessageReactionsRemoveAll(formatSnowflake(channelID), formatSnowflake(messageID),
		discordgo.WithContext(ctx))

	return wrapRESTError(err)
}

// wrapRESTError marks permission rejections as domain.ErrForbidden so the
// core can tell permanent failures from transient ones.
func wrapRESTError(err error) error {
	if err == nil {
		return nil
	}

	if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	}

	return err
}
