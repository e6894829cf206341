package request

// ChatMemberRequest 会话成员增删请求
// 使用位置:
//   - internal/handler/chat_handler.go: AddMember, RemoveMember
type ChatMemberRequest struct {
	ChatId string `json:"chat_id" binding:"required"`
	Login  string `json:"login" binding:"required"`
}
