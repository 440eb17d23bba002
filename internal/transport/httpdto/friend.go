package httpdto

type AddFriendRequest struct {
	Email string `json:"email" binding:"required,email"`
}
