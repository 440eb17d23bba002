package httpdto

type SendMessageRequest struct {
	Text   string `json:"text" binding:"required"`
	ChatID string `json:"chatId" binding:"required"`
}
