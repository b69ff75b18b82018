package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// inboxSize bounds how many control events may queue behind an
	// in-flight re-render before newer ones are dropped.
	inboxSize = 8

	reactionAttempts = 3
	cleanupTimeout   = 5 * time.Second
	retryPause       = 100 * time.Millisecond
)

// Session is one live reaction-controlled view anchored to a message. Its
// state is owned exclusively by the goroutine running Run; external stimuli
// enter only through Offer.
type Session struct {
	channelID int64
	messageID int64
	owner     int64
	view      View
	timeout   time.Duration
	sender    port.MessageSender

	inbox chan domain.Reaction
	done  chan struct{}
}

func NewSession(sender port.MessageSender, view View, channelID, messageID, owner int64,
	timeout time.Duration) *Session {
	return &Session{
		channelID: channelID,
		messageID: messageID,
		owner:     owner,
		view:      view,
		timeout:   timeout,
		sender:    sender,
		inbox:     make(chan domain.Reaction, inboxSize),
		done:      make(chan struct{}),
	}
}

// MessageID returns the anchor message identity.
func (s *Session) MessageID() int64 {
	return s.messageID
}

// Offer funnels a control event into the session. Never blocks; when the
// inbox is full the event is dropped so a reaction flood cannot stall the
// runtime.
func (s *Session) Offer(r domain.Reaction) {
	select {
	case s.inbox <- r:
	case <-s.done:
	default:
		log.Warn().Int64("messageId", s.messageID).Msg("session inbox full, dropping control event")
	}
}

// Done is closed once the session reached its terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run installs the control affordances and drives the session until the
// deadline elapses, ctx is cancelled, or the anchor setup fails. Cleanup is
// best-effort and never surfaces an error.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	l := log.With().
		Int64("messageId", s.messageID).
		Int64("owner", s.owner).
		Logger()

	if err := s.installControls(ctx); err != nil {
		s.cleanup(l)
		return fmt.Errorf("failed to install session controls: %w", err)
	}

	l.Debug().Dur("timeout", s.timeout).Msg("session active")

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	for {
		// The deadline beats a simultaneously-ready control event, so
		// the session terminates even under sustained reaction flooding.
		select {
		case <-timer.C:
			s.cleanup(l)
			return nil
		default:
		}

		select {
		case <-timer.C:
			s.cleanup(l)
			return nil
		case <-ctx.Done():
			s.cleanup(l)
			return nil
		case r := <-s.inbox:
			if r.UserID != s.owner {
				l.Debug().Int64("userId", r.UserID).Msg("ignoring reaction from non-owner")
				continue
			}

			if !s.view.Apply(r.Emoji) {
				continue
			}

			if err := s.sender.EditMessage(ctx, s.channelID, s.messageID, s.view.Render()); err != nil {
				l.Warn().Err(err).Msg("failed to re-render session view")
			}
		}
	}
}

func (s *Session) installControls(ctx context.Context) error {
	for _, emoji := range s.view.Controls() {
		if err := s.addReactionRetry(ctx, emoji); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) addReactionRetry(ctx context.Context, emoji string) error {
	var err error

	for attempt := 0; attempt < reactionAttempts; attempt++ {
		if err = s.sender.AddReaction(ctx, s.channelID, s.messageID, emoji); err == nil {
			return nil
		}

		if errors.Is(err, domain.ErrForbidden) {
			return err
		}

		time.Sleep(retryPause)
	}

	return fmt.Errorf("failed to add reaction after %d retries: %w", reactionAttempts, err)
}

// cleanup revokes the control affordances. When the bot lost the permission
// to clear all reactions it falls back to removing only its own. Failures
// are logged, never escalated.
func (s *Session) cleanup(l zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	err := s.sender.RemoveAllReactions(ctx, s.channelID, s.messageID)
	if err == nil {
		l.Debug().Msg("session closed")
		return
	}

	if !errors.Is(err, domain.ErrForbidden) {
		l.Warn().Err(err).Msg("failed to clear session controls")
		return
	}

	time.Sleep(retryPause)

	for _, emoji := range s.view.Controls() {
		if err := s.sender.RemoveOwnReaction(ctx, s.channelID, s.messageID, emoji); err != nil {
			l.Warn().Err(err).Str("emoji", emoji).Msg("failed to remove own session control")
		}
	}

	l.Debug().Msg("session closed")
}
