package request

// DeleteAccountRequest 注销账号请求
// 注销属于不可逆操作，要求二次提交密码确认
// 使用位置:
//   - internal/handler/user_handler.go: DeleteAccount
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}
