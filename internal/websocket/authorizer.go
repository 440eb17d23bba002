package websocket

import (
	"context"
	"strings"

	"whispr-server/internal/domain"
	"whispr-server/internal/services"
	"whispr-server/pkg/events"
)

// ChannelAuthorizer decides whether a user may follow a broadcast channel.
// Users always get their own user:{id}:* channels; chat channels require
// being a participant of the chat id and currently friends with the other
// participant.
type ChannelAuthorizer struct {
	directory services.Directory
}

func NewChannelAuthorizer(directory services.Directory) *ChannelAuthorizer {
	return &ChannelAuthorizer{directory: directory}
}

func (a *ChannelAuthorizer) CanSubscribe(ctx context.Context, userID, channel string) bool {
	switch {
	case channel == events.UserIncomingRequestsChannel(userID),
		channel == events.UserChatsChannel(userID):
		return true
	case strings.HasPrefix(channel, "chat:"):
		return a.canFollowChat(ctx, userID, strings.TrimPrefix(channel, "chat:"))
	default:
		return false
	}
}

func (a *ChannelAuthorizer) canFollowChat(ctx context.Context, userID, chatID string) bool {
	friendID, isParticipant := domain.ChatPartner(chatID, userID)
	if !isParticipant {
		return false
	}
	isFriend, err := a.directory.IsFriend(ctx, userID, friendID)
	if err != nil {
		return false
	}
	return isFriend
}
