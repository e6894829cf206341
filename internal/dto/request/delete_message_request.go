package request

// DeleteMessageRequest 删除消息请求
// 使用位置:
//   - internal/handler/message_handler.go: DeleteMessage
type DeleteMessageRequest struct {
	ChatId    string `json:"chat_id" binding:"required"`
	MessageId int64  `json:"message_id" binding:"required"`
}
