package respond

// CreateChatRespond 创建会话响应
// 使用位置:
//   - internal/service/chat/service.go: CreateChat
type CreateChatRespond struct {
	ChatId  string   `json:"chat_id"`
	Type    string   `json:"type"`
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
}
