package domain

import (
	"errors"
	"strings"
)

// ChatIDSeparator joins the two participant ids of a direct chat. The
// participant order is fixed when the chat is created; no lexical ordering
// is assumed here.
const ChatIDSeparator = "--"

var ErrMalformedChatID = errors.New("chat id must contain exactly two participants")

// SplitChatID breaks a chat id into its two participant ids.
func SplitChatID(chatID string) (string, string, error) {
	parts := strings.Split(chatID, ChatIDSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrMalformedChatID
	}
	return parts[0], parts[1], nil
}

// ChatPartner returns the other participant of a chat, reporting whether
// userID is a participant at all.
func ChatPartner(chatID, userID string) (string, bool) {
	first, second, err := SplitChatID(chatID)
	if err != nil {
		return "", false
	}
	switch userID {
	case first:
		return second, true
	case second:
		return first, true
	default:
		return "", false
	}
}
