package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"whispr-server/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Directory key patterns (client contract, shared with the web app):
//   user:email:{email}                   -> user id
//   user:{id}                            -> profile JSON
//   user:{id}:friends                    -> set of friend ids
//   user:{id}:incoming_friend_requests   -> set of requester ids
//   chat:{chatId}:messages               -> sorted set of serialized messages, score = timestamp

func userKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func userEmailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func friendsKey(userID string) string {
	return fmt.Sprintf("user:%s:friends", userID)
}

func incomingRequestsKey(userID string) string {
	return fmt.Sprintf("user:%s:incoming_friend_requests", userID)
}

func chatMessagesKey(chatID string) string {
	return fmt.Sprintf("chat:%s:messages", chatID)
}

// Directory reads and writes the social-graph records held in Redis. It is
// the production implementation of services.Directory.
type Directory struct {
	client *goredis.Client
}

func NewDirectory(client *goredis.Client) *Directory {
	return &Directory{client: client}
}

// LookupUserID resolves an email to a user id. The second return reports
// whether the email is known.
func (d *Directory) LookupUserID(ctx context.Context, email string) (string, bool, error) {
	id, err := d.client.Get(ctx, userEmailKey(email)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// GetUser loads a profile blob. The second return reports whether the
// profile exists.
func (d *Directory) GetUser(ctx context.Context, userID string) (*domain.User, bool, error) {
	raw, err := d.client.Get(ctx, userKey(userID)).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	user, err := domain.ParseUser(raw)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (d *Directory) IsFriend(ctx context.Context, ownerID, memberID string) (bool, error) {
	return d.client.SIsMember(ctx, friendsKey(ownerID), memberID).Result()
}

func (d *Directory) Friends(ctx context.Context, userID string) ([]string, error) {
	return d.client.SMembers(ctx, friendsKey(userID)).Result()
}

func (d *Directory) HasIncomingRequest(ctx context.Context, recipientID, requesterID string) (bool, error) {
	return d.client.SIsMember(ctx, incomingRequestsKey(recipientID), requesterID).Result()
}

// AddIncomingRequest records a friend request. Set semantics make a repeat
// add a no-op; duplicate rejection happens in the service before this call.
func (d *Directory) AddIncomingRequest(ctx context.Context, recipientID, requesterID string) error {
	return d.client.SAdd(ctx, incomingRequestsKey(recipientID), requesterID).Err()
}

// AppendMessage stores the serialized message in the chat log, scored by its
// timestamp so history reads back in timestamp order.
func (d *Directory) AppendMessage(ctx context.Context, chatID string, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return d.client.ZAdd(ctx, chatMessagesKey(chatID), goredis.Z{
		Score:  float64(msg.Timestamp),
		Member: data,
	}).Err()
}
