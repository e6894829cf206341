// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"messenger_server/internal/dto/request"
	"messenger_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理注册、登录、账号信息和注销
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(login string) (*respond.UserInfoRespond, error)
	// UpdateStatus 更新状态签名
	UpdateStatus(login, status string) error
	// DeleteAccount 注销账号并级联清理关系、会话成员资格和消息
	DeleteAccount(login, password string) error
}

// AuthService 认证业务接口
// 处理令牌校验与刷新
type AuthService interface {
	// ValidateTokenID 校验用户当前有效的 Token ID
	ValidateTokenID(userID, tokenID string) (bool, error)
	// Refresh 用 Refresh Token 换取新的 Access Token
	Refresh(refreshToken string) (*respond.RefreshTokenRespond, error)
}

// RelationshipService 联系人与黑名单业务接口
// 两张名单都是无序去重集合，重复添加和移除不存在的条目都是幂等操作
type RelationshipService interface {
	// AddContact 添加联系人
	AddContact(owner, target string) error
	// RemoveContact 移除联系人
	RemoveContact(owner, target string) error
	// AddBlocked 添加黑名单
	AddBlocked(owner, target string) error
	// RemoveBlocked 移除黑名单
	RemoveBlocked(owner, target string) error
	// GetContactList 获取联系人列表
	GetContactList(owner string) ([]respond.ContactListRespond, error)
	// GetBlockedList 获取黑名单列表
	GetBlockedList(owner string) ([]string, error)
}

// ChatService 会话业务接口
// 处理会话的创建、成员管理和解散
type ChatService interface {
	// CreateChat 创建会话，发起者自动成为成员和创建者
	CreateChat(initiator string, req request.CreateChatRequest) (*respond.CreateChatRespond, error)
	// AddMember 创建者向会话添加成员
	AddMember(actor, chatId, login string) error
	// RemoveMember 创建者从会话移出成员
	RemoveMember(actor, chatId, login string) error
	// DeleteChat 创建者解散会话
	DeleteChat(actor, chatId string) error
	// GetChatList 获取用户的会话列表
	GetChatList(login string) ([]respond.ChatListRespond, error)
	// GetMemberList 获取会话成员列表，仅成员可见
	GetMemberList(actor, chatId string) ([]string, error)
}

// MessageService 消息业务接口
// 处理消息的发送、拉取、编辑和删除
type MessageService interface {
	// SendMessage 向会话发送消息
	SendMessage(actor string, req request.SendMessageRequest) (*respond.SendMessageRespond, error)
	// GetRecentMessages 按时间由新到旧拉取消息
	GetRecentMessages(actor, chatId string, offset, limit int) ([]respond.MessageListRespond, error)
	// EditMessage 发送者编辑自己的消息
	EditMessage(actor string, req request.EditMessageRequest) error
	// DeleteMessage 发送者删除自己的消息
	DeleteMessage(actor string, req request.DeleteMessageRequest) error
}
