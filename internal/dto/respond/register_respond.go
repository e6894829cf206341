package respond

// RegisterRespond 用户注册响应
// 使用位置:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Login     string `json:"login"`
	CreatedAt string `json:"created_at"`
}
