package services

import (
	"context"
	"fmt"
	"time"

	"whispr-server/internal/domain"
	whispr_errors "whispr-server/pkg/errors"
	"whispr-server/pkg/events"
)

// FriendService validates and records one-way friend requests. Acceptance is
// a separate flow that writes the friend sets; this service only appends to
// the recipient's incoming-request set.
type FriendService struct {
	directory   Directory
	broadcaster events.Broadcaster
}

func NewFriendService(directory Directory, broadcaster events.Broadcaster) *FriendService {
	return &FriendService{directory: directory, broadcaster: broadcaster}
}

// Submit records a friend request from the session holder to the owner of
// targetEmail. Checks run in a fixed order and each failure is a distinct
// outcome; no side effect happens before all checks pass. The notification
// is published before the request is persisted and is not rolled back if
// persistence fails.
func (s *FriendService) Submit(ctx context.Context, session *Session, targetEmail string) error {
	if targetEmail == "" {
		return whispr_errors.ErrInvalidPayload
	}

	idToAdd, found, err := s.directory.LookupUserID(ctx, targetEmail)
	if err != nil {
		return fmt.Errorf("resolving target email: %w", err)
	}
	if !found {
		return whispr_errors.ErrTargetNotFound
	}

	if session == nil {
		return whispr_errors.ErrUnauthenticated
	}

	if idToAdd == session.ID {
		return whispr_errors.ErrSelfRequest
	}

	alreadyRequested, err := s.directory.HasIncomingRequest(ctx, idToAdd, session.ID)
	if err != nil {
		return fmt.Errorf("checking incoming requests: %w", err)
	}
	if alreadyRequested {
		return whispr_errors.ErrDuplicateRequest
	}

	alreadyFriends, err := s.directory.IsFriend(ctx, idToAdd, session.ID)
	if err != nil {
		return fmt.Errorf("checking friendship: %w", err)
	}
	if alreadyFriends {
		return whispr_errors.ErrAlreadyFriends
	}

	// Notify first, then persist. A failed persist leaves the notification
	// delivered; the two risks are independent and neither is retried.
	err = s.broadcaster.Publish(ctx, events.UserIncomingRequestsChannel(idToAdd), events.Event{
		Event: events.EventIncomingFriendRequest,
		Data: domain.FriendRequestNotification{
			SenderID:    session.ID,
			SenderEmail: session.Email,
		},
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", whispr_errors.ErrDispatchFailed, err)
	}

	if err := s.directory.AddIncomingRequest(ctx, idToAdd, session.ID); err != nil {
		return fmt.Errorf("persisting friend request: %w", err)
	}

	return nil
}
