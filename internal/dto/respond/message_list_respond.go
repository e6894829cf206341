package respond

// MessageListRespond 消息列表响应中的单个条目
// 列表按发送时间由新到旧排列
// 使用位置:
//   - internal/service/message/service.go: GetRecentMessages
type MessageListRespond struct {
	MessageId   int64  `json:"message_id"`
	SenderLogin string `json:"sender_login"`
	Content     string `json:"content"`
	SentAt      string `json:"sent_at"`
}
