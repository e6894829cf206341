package respond

// SendMessageRespond 发送消息响应
// 使用位置:
//   - internal/service/message/service.go: SendMessage
type SendMessageRespond struct {
	MessageId int64  `json:"message_id"`
	ChatId    string `json:"chat_id"`
	SentAt    string `json:"sent_at"`
}
