// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"messenger_server/internal/dao/mysql/repository"
	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/service/auth"
	"messenger_server/internal/service/chat"
	"messenger_server/internal/service/message"
	"messenger_server/internal/service/relationship"
	"messenger_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层持有该聚合访问各个 Service
type Services struct {
	User         UserService         // 用户 Service
	Auth         AuthService         // 认证 Service
	Relationship RelationshipService // 关系 Service
	Chat         ChatService         // 会话 Service
	Message      MessageService      // 消息 Service
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// cache: 缓存服务，可为 nil（纯数据库模式）
// broker: 事件代理，可为 nil（不推送实时事件）
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, broker mq.EventBroker) *Services {
	return &Services{
		User:         user.NewUserService(repos, cache),
		Auth:         auth.NewAuthService(cache),
		Relationship: relationship.NewRelationshipService(repos, cache),
		Chat:         chat.NewChatService(repos, cache, broker),
		Message:      message.NewMessageService(repos, cache, broker),
	}
}
