package request

// EditMessageRequest 编辑消息请求
// 使用位置:
//   - internal/handler/message_handler.go: EditMessage
type EditMessageRequest struct {
	ChatId    string `json:"chat_id" binding:"required"`
	MessageId int64  `json:"message_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}
