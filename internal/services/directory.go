package services

import (
	"context"

	"whispr-server/internal/domain"
)

// Directory is the external key-value/set/sorted-set service holding user
// records and social-graph data. The production implementation lives in
// internal/redis; tests substitute an in-memory fake.
type Directory interface {
	LookupUserID(ctx context.Context, email string) (string, bool, error)
	GetUser(ctx context.Context, userID string) (*domain.User, bool, error)
	IsFriend(ctx context.Context, ownerID, memberID string) (bool, error)
	Friends(ctx context.Context, userID string) ([]string, error)
	HasIncomingRequest(ctx context.Context, recipientID, requesterID string) (bool, error)
	AddIncomingRequest(ctx context.Context, recipientID, requesterID string) error
	AppendMessage(ctx context.Context, chatID string, msg domain.Message) error
}
