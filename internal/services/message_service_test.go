package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"whispr-server/internal/domain"
	whispr_errors "whispr-server/pkg/errors"

	"github.com/stretchr/testify/require"
)

func newMessageFixture(t *testing.T) (*MessageService, *fakeDirectory, *fakeBroadcaster, *[]string) {
	t.Helper()
	ops := &[]string{}
	dir := newFakeDirectory(ops)
	dir.addUser(domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Image: "/alice.png"})
	dir.addUser(domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com", Image: "/bob.png"})
	dir.befriend("u1", "u2")
	broadcaster := &fakeBroadcaster{ops: ops}
	return NewMessageService(dir, broadcaster), dir, broadcaster, ops
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	const chatID = "u1--u2"

	t.Run("should reject empty text and empty chat id", func(t *testing.T) {
		req := require.New(t)
		svc, _, broadcaster, _ := newMessageFixture(t)

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "")
		req.ErrorIs(err, whispr_errors.ErrInvalidPayload)

		_, err = svc.Send(ctx, session("u1", "alice@example.com"), "", "hey")
		req.ErrorIs(err, whispr_errors.ErrInvalidPayload)

		req.Empty(broadcaster.published)
	})

	t.Run("should reject unauthenticated caller with no side effects", func(t *testing.T) {
		req := require.New(t)
		svc, dir, broadcaster, _ := newMessageFixture(t)

		_, err := svc.Send(ctx, nil, chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrUnauthenticated)
		req.Empty(broadcaster.published)
		req.Empty(dir.logs[chatID])
	})

	t.Run("should reject a sender who is not a chat participant", func(t *testing.T) {
		req := require.New(t)
		svc, _, broadcaster, _ := newMessageFixture(t)

		_, err := svc.Send(ctx, session("u3", "carol@example.com"), chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrUnauthorized)
		req.Empty(broadcaster.published)
	})

	t.Run("should reject a chat id without separator instead of crashing", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newMessageFixture(t)

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), "u1u2", "hey")

		req.ErrorIs(err, whispr_errors.ErrUnauthorized)
	})

	t.Run("should reject when participants are not friends", func(t *testing.T) {
		req := require.New(t)
		ops := &[]string{}
		dir := newFakeDirectory(ops)
		dir.addUser(domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
		dir.addUser(domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com"})
		broadcaster := &fakeBroadcaster{ops: ops}
		svc := NewMessageService(dir, broadcaster)

		// A chat id shaped like a real one grants nothing without the edge.
		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrUnauthorized)
		req.Empty(broadcaster.published)
		req.Empty(dir.logs[chatID])
	})

	t.Run("should reject when the sender profile is missing", func(t *testing.T) {
		req := require.New(t)
		svc, dir, _, _ := newMessageFixture(t)
		delete(dir.users, "u1")

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrSenderNotFound)
	})

	t.Run("should emit both events before persisting", func(t *testing.T) {
		req := require.New(t)
		svc, dir, broadcaster, ops := newMessageFixture(t)

		msg, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey bob")

		req.NoError(err)
		req.NotEmpty(msg.ID)
		req.Equal("u1", msg.SenderID)
		req.Equal("hey bob", msg.Text)
		req.Positive(msg.Timestamp)

		req.Len(broadcaster.published, 2)

		chatEvent := broadcaster.published[0]
		req.Equal("chat:u1--u2", chatEvent.channel)
		req.Equal("incoming-message", chatEvent.event.Event)
		req.Equal(*msg, chatEvent.event.Data)

		inboxEvent := broadcaster.published[1]
		req.Equal("user:u2:chats", inboxEvent.channel)
		req.Equal("new_message", inboxEvent.event.Event)
		preview, ok := inboxEvent.event.Data.(domain.MessagePreview)
		req.True(ok)
		req.Equal(*msg, preview.Message)
		req.Equal("/alice.png", preview.SenderImg)
		req.Equal("Alice", preview.SenderName)

		req.Equal([]string{
			"publish:chat:u1--u2",
			"publish:user:u2:chats",
			"zadd:u1--u2",
		}, *ops)
		req.Len(dir.logs[chatID], 1)
	})

	t.Run("should accept the sender in either chat id position", func(t *testing.T) {
		req := require.New(t)
		svc, _, broadcaster, _ := newMessageFixture(t)

		_, err := svc.Send(ctx, session("u2", "bob@example.com"), chatID, "hey alice")

		req.NoError(err)
		req.Equal("user:u1:chats", broadcaster.published[1].channel)
	})

	t.Run("should keep the persisted log ordered by timestamp", func(t *testing.T) {
		req := require.New(t)
		svc, dir, _, _ := newMessageFixture(t)

		base := time.Now()
		for i := 0; i < 5; i++ {
			offset := time.Duration(i) * time.Second
			svc.now = func() time.Time { return base.Add(offset) }
			_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, fmt.Sprintf("message %d", i))
			req.NoError(err)
		}

		log := dir.logs[chatID]
		req.Len(log, 5)
		for i := 1; i < len(log); i++ {
			req.GreaterOrEqual(log[i].Timestamp, log[i-1].Timestamp)
		}
	})

	t.Run("should not persist when the first broadcast fails", func(t *testing.T) {
		req := require.New(t)
		svc, dir, broadcaster, _ := newMessageFixture(t)
		broadcaster.err = errors.New("broker down")
		broadcaster.failChannel = "chat:u1--u2"

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrDispatchFailed)
		req.Empty(dir.logs[chatID])
	})

	t.Run("should not persist when the second broadcast fails", func(t *testing.T) {
		req := require.New(t)
		svc, dir, broadcaster, _ := newMessageFixture(t)
		broadcaster.err = errors.New("broker down")
		broadcaster.failChannel = "user:u2:chats"

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey")

		req.ErrorIs(err, whispr_errors.ErrDispatchFailed)
		req.Len(broadcaster.published, 1)
		req.Empty(dir.logs[chatID])
	})

	t.Run("should surface persistence failure without reporting dispatch failure", func(t *testing.T) {
		req := require.New(t)
		svc, dir, broadcaster, _ := newMessageFixture(t)
		dir.appendErr = errors.New("store down")

		_, err := svc.Send(ctx, session("u1", "alice@example.com"), chatID, "hey")

		req.Error(err)
		req.NotErrorIs(err, whispr_errors.ErrDispatchFailed)
		// The live delivery already happened and is not undone.
		req.Len(broadcaster.published, 2)
	})
}
