package respond

// ChatListRespond 会话列表响应中的单个条目
// LastMessageAt 为空串表示会话内还没有消息
// 使用位置:
//   - internal/service/chat/service.go: GetChatList
type ChatListRespond struct {
	ChatId        string `json:"chat_id"`
	Type          string `json:"type"`
	Owner         string `json:"owner"`
	MemberCount   int64  `json:"member_count"`
	LastMessageAt string `json:"last_message_at"`
}
