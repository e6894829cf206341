package request

// DeleteChatRequest 解散会话请求
// 使用位置:
//   - internal/handler/chat_handler.go: DeleteChat
type DeleteChatRequest struct {
	ChatId string `json:"chat_id" binding:"required"`
}
