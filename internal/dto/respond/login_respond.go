package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Login        string `json:"login"`
	Telephone    string `json:"telephone"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
