package respond

// ContactListRespond 联系人列表响应中的单个条目
// 使用位置:
//   - internal/service/relationship/service.go: GetContactList
type ContactListRespond struct {
	Login     string `json:"login"`
	Telephone string `json:"telephone"`
	Status    string `json:"status"`
}
