package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Relationship RelationshipRepository
	Chat         ChatRepository
	ChatMember   ChatMemberRepository
	Message      MessageRepository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Relationship: NewRelationshipRepository(db),
		Chat:         NewChatRepository(db),
		ChatMember:   NewChatMemberRepository(db),
		Message:      NewMessageRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 鉴权判定和随后的写入必须共用一个 txRepos，保证检查与写入之间没有竞态窗口
// 事务内的所有操作要么全部成功，要么全部回滚
// 没有 db 实例时（测试以内存仓储直接构造 Repositories）直接执行回调
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
