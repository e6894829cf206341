package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Login     string `json:"login" binding:"required,min=2,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Telephone string `json:"telephone"`
	Status    string `json:"status" binding:"max=140"`
}
