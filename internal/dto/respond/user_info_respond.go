package respond

// UserInfoRespond 用户信息响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo
type UserInfoRespond struct {
	Login     string `json:"login"`
	Telephone string `json:"telephone"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
