package repository

import (
	"time"

	"messenger_server/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// Create 创建用户
	Create(user *model.User) error
	// FindByLogin 按登录名查找用户
	FindByLogin(login string) (*model.User, error)
	// ExistsByLogin 判断登录名是否存在
	ExistsByLogin(login string) (bool, error)
	// FindByLogins 批量按登录名查找用户
	FindByLogins(logins []string) ([]model.User, error)
	// UpdateStatus 更新用户状态文本
	UpdateStatus(login, status string) error
	// DeleteByLogin 删除用户（物理删除，登录名可被重新注册）
	DeleteByLogin(login string) error
}

// RelationshipRepository 用户关系数据访问接口
// 联系人与黑名单共用，集合语义由组合唯一索引保证
type RelationshipRepository interface {
	// CreateIfAbsent 插入关系行，已存在时不做任何事
	CreateIfAbsent(rel *model.Relationship) error
	// Delete 删除关系行，返回受影响的行数（0 表示本来就不存在）
	Delete(ownerLogin, targetLogin string, relType int8) (int64, error)
	// Exists 判断关系行是否存在
	Exists(ownerLogin, targetLogin string, relType int8) (bool, error)
	// FindTargetsByOwnerAndType 查找 owner 指定类型列表中的全部目标登录名
	FindTargetsByOwnerAndType(ownerLogin string, relType int8) ([]string, error)
	// DeleteByUser 删除引用指定用户的全部关系行（双向）
	DeleteByUser(login string) error
}

// ChatRepository 会话数据访问接口
type ChatRepository interface {
	// Create 创建会话
	Create(chat *model.Chat) error
	// FindByUuid 按 uuid 查找会话
	FindByUuid(uuid string) (*model.Chat, error)
	// FindByUuids 批量按 uuid 查找会话
	FindByUuids(uuids []string) ([]model.Chat, error)
	// SoftDeleteByUuid 软删除会话
	SoftDeleteByUuid(uuid string) error
}

// ChatMemberRepository 会话成员数据访问接口
type ChatMemberRepository interface {
	// CreateIfAbsent 插入成员行，已存在时不做任何事
	CreateIfAbsent(member *model.ChatMember) error
	// Delete 删除成员行，返回受影响的行数
	Delete(chatUuid, userLogin string) (int64, error)
	// Exists 判断用户是否为会话成员
	Exists(chatUuid, userLogin string) (bool, error)
	// CountByChatUuid 统计会话成员数
	CountByChatUuid(chatUuid string) (int64, error)
	// FindLoginsByChatUuid 查找会话全部成员的登录名
	FindLoginsByChatUuid(chatUuid string) ([]string, error)
	// FindChatUuidsByLogin 查找用户所属的全部会话 uuid
	FindChatUuidsByLogin(userLogin string) ([]string, error)
	// DeleteByChatUuid 删除会话的全部成员行
	DeleteByChatUuid(chatUuid string) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(msg *model.Message) error
	// FindByUuid 在指定会话内按消息ID查找
	FindByUuid(chatUuid string, msgUuid int64) (*model.Message, error)
	// ListRecent 按 (sent_at, uuid) 降序分页查询会话消息
	ListRecent(chatUuid string, offset, limit int) ([]model.Message, error)
	// MaxSentAt 查询会话内最大的 sent_at，第二个返回值表示会话内是否有消息
	MaxSentAt(chatUuid string) (time.Time, bool, error)
	// UpdateContent 原地更新消息内容，不触碰 sent_at
	UpdateContent(msgUuid int64, content string) error
	// SoftDeleteByUuid 软删除单条消息
	SoftDeleteByUuid(msgUuid int64) error
	// SoftDeleteByChatUuid 软删除会话的全部消息
	SoftDeleteByChatUuid(chatUuid string) error
	// SoftDeleteByChatAndSender 软删除会话内指定发送者的全部消息
	SoftDeleteByChatAndSender(chatUuid, senderLogin string) error
	// LatestSentAtByChatUuids 批量查询每个会话最近一条消息的时间
	LatestSentAtByChatUuids(chatUuids []string) (map[string]time.Time, error)
}
