// Package model 定义数据库实体模型
// 本文件定义消息模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 排序键为 (sent_at, uuid)：同一会话内 sent_at 严格递增，
// uuid 雪花ID 作为极端并发下的决胜键
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成的 int64
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ChatUuid 所属会话
	ChatUuid string `gorm:"column:chat_uuid;index:idx_chat_sent,priority:1;type:char(20);not null;comment:会话uuid"`

	// SenderLogin 发送者登录名，编辑和删除只允许发送者本人
	SenderLogin string `gorm:"column:sender_login;index;type:varchar(50);not null;comment:发送者登录名"`

	// Content 消息文本内容，编辑时原地替换
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// SentAt 服务端分配的发送时间
	// 编辑消息不会改变该字段，消息在会话中的位置因此保持不变
	// 列精度必须是微秒（datetime(6)），写入侧按需前推一微秒，精度不足会让相邻消息落库后相等
	SentAt time.Time `gorm:"column:sent_at;index:idx_chat_sent,priority:2;type:datetime(6);not null;comment:发送时间"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
