package services

import (
	"context"
	"sort"

	"whispr-server/internal/domain"
	"whispr-server/pkg/events"
)

// fakeDirectory is an in-memory stand-in for the Redis directory. The shared
// ops slice records side effects in call order so tests can assert the
// broadcast-then-persist sequencing.
type fakeDirectory struct {
	emails   map[string]string
	users    map[string]*domain.User
	friends  map[string]map[string]bool
	incoming map[string]map[string]bool
	logs     map[string][]domain.Message

	appendErr error
	addErr    error
	ops       *[]string
}

func newFakeDirectory(ops *[]string) *fakeDirectory {
	return &fakeDirectory{
		emails:   make(map[string]string),
		users:    make(map[string]*domain.User),
		friends:  make(map[string]map[string]bool),
		incoming: make(map[string]map[string]bool),
		logs:     make(map[string][]domain.Message),
		ops:      ops,
	}
}

func (f *fakeDirectory) addUser(u domain.User) {
	f.users[u.ID] = &u
	f.emails[u.Email] = u.ID
}

func (f *fakeDirectory) befriend(a, b string) {
	if f.friends[a] == nil {
		f.friends[a] = make(map[string]bool)
	}
	if f.friends[b] == nil {
		f.friends[b] = make(map[string]bool)
	}
	f.friends[a][b] = true
	f.friends[b][a] = true
}

func (f *fakeDirectory) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeDirectory) LookupUserID(_ context.Context, email string) (string, bool, error) {
	id, ok := f.emails[email]
	return id, ok, nil
}

func (f *fakeDirectory) GetUser(_ context.Context, userID string) (*domain.User, bool, error) {
	u, ok := f.users[userID]
	return u, ok, nil
}

func (f *fakeDirectory) IsFriend(_ context.Context, ownerID, memberID string) (bool, error) {
	return f.friends[ownerID][memberID], nil
}

func (f *fakeDirectory) Friends(_ context.Context, userID string) ([]string, error) {
	var out []string
	for id := range f.friends[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeDirectory) HasIncomingRequest(_ context.Context, recipientID, requesterID string) (bool, error) {
	return f.incoming[recipientID][requesterID], nil
}

func (f *fakeDirectory) AddIncomingRequest(_ context.Context, recipientID, requesterID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.incoming[recipientID] == nil {
		f.incoming[recipientID] = make(map[string]bool)
	}
	f.incoming[recipientID][requesterID] = true
	f.record("sadd:" + recipientID)
	return nil
}

func (f *fakeDirectory) AppendMessage(_ context.Context, chatID string, msg domain.Message) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	log := append(f.logs[chatID], msg)
	sort.SliceStable(log, func(i, j int) bool { return log[i].Timestamp < log[j].Timestamp })
	f.logs[chatID] = log
	f.record("zadd:" + chatID)
	return nil
}

type publishedEvent struct {
	channel string
	event   events.Event
}

// fakeBroadcaster records publishes and can be told to fail a specific
// channel (or every channel when failChannel is empty).
type fakeBroadcaster struct {
	published   []publishedEvent
	err         error
	failChannel string
	ops         *[]string
}

func (f *fakeBroadcaster) Publish(_ context.Context, channel string, event events.Event) error {
	if f.err != nil && (f.failChannel == "" || f.failChannel == channel) {
		return f.err
	}
	f.published = append(f.published, publishedEvent{channel: channel, event: event})
	if f.ops != nil {
		*f.ops = append(*f.ops, "publish:"+channel)
	}
	return nil
}
