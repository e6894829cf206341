package request

// UpdateStatusRequest 更新状态签名请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateStatus
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"max=140"`
}
