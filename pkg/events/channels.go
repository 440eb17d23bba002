package events

import "fmt"

// Event names dispatched by connected clients. Literal client contract.
const (
	EventIncomingFriendRequest = "incoming_friend_requests"
	EventIncomingMessage       = "incoming-message"
	EventNewMessage            = "new_message"
)

// Channel naming convention. Literal client contract, do not change.
func UserIncomingRequestsChannel(userID string) string {
	return fmt.Sprintf("user:%s:incoming_friend_requests", userID)
}

func UserChatsChannel(userID string) string {
	return fmt.Sprintf("user:%s:chats", userID)
}

func ChatChannel(chatID string) string {
	return fmt.Sprintf("chat:%s", chatID)
}
