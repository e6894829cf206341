package respond

// RefreshTokenRespond 刷新访问令牌响应
// 使用位置:
//   - internal/service/auth/service.go: Refresh
type RefreshTokenRespond struct {
	AccessToken string `json:"access_token"`
}
