package services

import (
	"context"
	"fmt"
	"time"

	"whispr-server/internal/domain"
	whispr_errors "whispr-server/pkg/errors"
	"whispr-server/pkg/events"

	"github.com/google/uuid"
)

// MessageService dispatches direct messages: it gates on current friendship,
// fans the message out to connected clients, then appends it to the chat's
// persisted log.
type MessageService struct {
	directory   Directory
	broadcaster events.Broadcaster
	now         func() time.Time
}

func NewMessageService(directory Directory, broadcaster events.Broadcaster) *MessageService {
	return &MessageService{
		directory:   directory,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// Send validates, broadcasts, and persists a message, strictly in that
// order. Broadcast failure aborts the whole operation before persistence,
// so a message nobody could have seen live is never stored. Persistence
// failure after a successful broadcast is surfaced as-is; the broadcast is
// not undone.
func (s *MessageService) Send(ctx context.Context, session *Session, chatID, text string) (*domain.Message, error) {
	if text == "" || chatID == "" {
		return nil, whispr_errors.ErrInvalidPayload
	}

	if session == nil {
		return nil, whispr_errors.ErrUnauthenticated
	}

	friendID, isParticipant := domain.ChatPartner(chatID, session.ID)
	if !isParticipant {
		return nil, whispr_errors.ErrUnauthorized
	}

	// Friendship is required at send time, not at chat-creation time. An
	// unfriended former friend cannot post into an existing chat id.
	friends, err := s.directory.Friends(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading friend list: %w", err)
	}
	if !contains(friends, friendID) {
		return nil, whispr_errors.ErrUnauthorized
	}

	sender, found, err := s.directory.GetUser(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sender profile: %w", err)
	}
	if !found {
		return nil, whispr_errors.ErrSenderNotFound
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  session.ID,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("constructed message failed validation: %w", err)
	}

	if err := s.broadcast(ctx, chatID, friendID, msg, sender); err != nil {
		return nil, fmt.Errorf("%w: %v", whispr_errors.ErrDispatchFailed, err)
	}

	if err := s.directory.AppendMessage(ctx, chatID, msg); err != nil {
		return nil, fmt.Errorf("persisting message: %w", err)
	}

	return &msg, nil
}

// broadcast emits the two real-time events: the raw message to the chat
// channel and a denormalized preview to the recipient's chats channel.
func (s *MessageService) broadcast(ctx context.Context, chatID, friendID string, msg domain.Message, sender *domain.User) error {
	err := s.broadcaster.Publish(ctx, events.ChatChannel(chatID), events.Event{
		Event:     events.EventIncomingMessage,
		Data:      msg,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return err
	}

	return s.broadcaster.Publish(ctx, events.UserChatsChannel(friendID), events.Event{
		Event: events.EventNewMessage,
		Data: domain.MessagePreview{
			Message:    msg,
			SenderImg:  sender.Image,
			SenderName: sender.Name,
		},
		Timestamp: msg.Timestamp,
	})
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
