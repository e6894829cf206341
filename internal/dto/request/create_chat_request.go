package request

// CreateChatRequest 创建会话请求
// 发起者不出现在 Participants 中，由服务端从令牌补入
// 使用位置:
//   - internal/handler/chat_handler.go: CreateChat
//   - internal/service/chat/service.go: CreateChat
type CreateChatRequest struct {
	Participants []string `json:"participants" binding:"required,min=1"`
}
