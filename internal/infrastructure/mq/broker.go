// Package mq 实现会话事件的发布与分发
// broker.go
// 核心职责：定义事件模型和事件代理接口
// 支持 Kafka (分布式) 和 Channel (单机) 两种实现
package mq

import (
	"context"
	"time"
)

// 事件类型常量
const (
	EventMessageSent    = "message.sent"    // 新消息
	EventMessageEdited  = "message.edited"  // 消息被编辑
	EventMessageDeleted = "message.deleted" // 消息被删除
	EventChatCreated    = "chat.created"    // 会话创建
	EventChatDeleted    = "chat.deleted"    // 会话解散
	EventMemberAdded    = "member.added"    // 成员加入
	EventMemberRemoved  = "member.removed"  // 成员移出
)

// ChatEvent 会话事件
// 写入数据库成功后发布，推送给 Members 中在线的用户
// 事件只做通知，消息台账以数据库为准
type ChatEvent struct {
	Kind      string    `json:"kind"`
	ChatId    string    `json:"chat_id"`
	MessageId int64     `json:"message_id,omitempty"`
	SenderId  string    `json:"sender_id,omitempty"`
	Content   string    `json:"content,omitempty"`
	SentAt    time.Time `json:"sent_at,omitempty"`
	Members   []string  `json:"members"`
}

// EventSink 事件下发接口
// 由 websocket 网关实现，解耦 mq 包对 gateway 包的依赖
type EventSink interface {
	// Deliver 将事件推送给在线的会话成员
	Deliver(ev ChatEvent)
}

// EventBroker 事件代理接口
type EventBroker interface {
	// Publish 发布事件
	Publish(ctx context.Context, ev ChatEvent) error
	// Start 启动事件消费循环
	Start()
	// Close 关闭代理资源
	Close()
}
