package domain

import "encoding/json"

// User is the profile blob the directory stores at user:{id}. The directory
// owns the record; this core only reads it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func ParseUser(raw string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FriendRequestNotification is the payload delivered on a recipient's
// incoming_friend_requests channel.
type FriendRequestNotification struct {
	SenderID    string `json:"senderId"`
	SenderEmail string `json:"senderEmail"`
}
