package request

// RelationTargetRequest 联系人/黑名单增删请求
// 四个关系操作共用同一请求体
// 使用位置:
//   - internal/handler/relationship_handler.go: AddContact, RemoveContact, AddBlocked, RemoveBlocked
type RelationTargetRequest struct {
	TargetLogin string `json:"target_login" binding:"required"`
}
