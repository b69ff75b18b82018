package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type AuthorityChecker interface {
	Check(ctx context.Context, actorID, guildID int64) (*Denial, error)
}

type BucketTaker interface {
	Take(name string, userID, guildID int64) time.Duration
}

const (
	dmUnavailable  = "This command is only available in servers."
	genericFailure = "Something went wrong while processing your command, blame my owner."
	cooldownNotice = "Command on cooldown, try again in %s."
)

// Router parses inbound messages into invocations and sequences the gates in
// front of command handlers. The authority check always runs before any
// bucket take, so a denied actor never burns cooldown tokens for others
// sharing a bucket key. The router is the only component that turns errors
// into actor-visible text.
type Router struct {
	registry port.CommandRegistry
	auth     AuthorityChecker
	buckets  BucketTaker
	sender   port.MessageSender
	prefix   string
	timeout  time.Duration
}

func NewRouter(registry port.CommandRegistry, auth AuthorityChecker, buckets BucketTaker,
	sender port.MessageSender, prefix string, timeout time.Duration) *Router {
	return &Router{
		registry: registry,
		auth:     auth,
		buckets:  buckets,
		sender:   sender,
		prefix:   prefix,
		timeout:  timeout,
	}
}

// HandleMessage routes one inbound message. Runs in the calling task; every
// outcome is handled here, nothing propagates to the gateway.
func (r *Router) HandleMessage(ctx context.Context, msg *domain.Message) {
	if msg.AuthorIsBot {
		return
	}

	inv, err := domain.ParseInvocation(r.prefix, msg)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) && parseErr.Reason == "empty command name" {
			r.reply(ctx, msg.ChannelID, msg.ID, "That's a prefix without a command. Try `"+r.prefix+"help`.")
		}

		return
	}

	handler, err := r.registry.Get(inv.Command)
	if err != nil {
		log.Debug().Str("command", inv.Command).Msg("no handler for command")
		return
	}

	l := log.With().
		Stringer("invocationId", inv.ID).
		Str("command", inv.Command).
		Int64("authorId", inv.AuthorID).
		Int64("guildId", inv.GuildID).
		Logger()

	l.Info().Msg("handling request")

	if handler.RequiresAuthority() {
		denial, err := r.auth.Check(ctx, inv.AuthorID, inv.GuildID)
		if err != nil {
			// Cache out of sync with the platform's membership state.
			l.Error().Err(err).Msg("authority check failed, cache may have drifted")
			r.reply(ctx, inv.ChannelID, inv.MessageID, genericFailure)
			return
		}

		if denial != nil {
			reason := denial.Reason
			if reason == "" {
				reason = dmUnavailable
			}

			l.Debug().Msg("denied authority")
			r.reply(ctx, inv.ChannelID, inv.MessageID, reason)
			return
		}
	}

	for _, bucketName := range handler.GetBuckets() {
		cooldown := r.buckets.Take(bucketName, inv.AuthorID, inv.GuildID)
		if cooldown > 0 {
			l.Debug().Str("bucket", bucketName).Dur("cooldown", cooldown).Msg("ratelimited")
			r.reply(ctx, inv.ChannelID, inv.MessageID,
				fmt.Sprintf(cooldownNotice, cooldown.Round(time.Second)))
			return
		}
	}

	if err := handler.Respond(ctx, r.timeout, inv); err != nil {
		l.Error().Err(err).Msg("failed to respond to command")
		r.reply(ctx, inv.ChannelID, inv.MessageID, genericFailure)
	}
}

func (r *Router) reply(ctx context.Context, channelID, messageID int64, text string) {
	if _, err := r.sender.SendMessageReply(ctx, channelID, messageID, text); err != nil {
		log.Warn().Err(err).Int64("channelId", channelID).Msg("failed to send reply")
	}
}
