package request

// RecentMessagesRequest 拉取最近消息请求
// Offset/Limit 做翻页，Limit 为 0 时服务端取默认页大小
// 使用位置:
//   - internal/handler/message_handler.go: GetRecentMessages
type RecentMessagesRequest struct {
	ChatId string `form:"chat_id" binding:"required"`
	Offset int    `form:"offset" binding:"min=0"`
	Limit  int    `form:"limit" binding:"min=0"`
}
