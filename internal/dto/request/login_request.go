package request

// LoginRequest 用户密码登录请求
// 使用位置:
//   - internal/handler/user_handler.go: Login
//   - internal/service/user/service.go: Login
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}
