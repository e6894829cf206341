// Package model 定义数据库实体模型
// 本文件定义会话成员模型
package model

import (
	"gorm.io/gorm"
)

// ChatMember 会话成员模型
// 对应数据库 chat_member 表
// (chat_uuid, user_login) 组合唯一，成员集是集合语义
type ChatMember struct {
	gorm.Model
	ChatUuid  string `gorm:"column:chat_uuid;uniqueIndex:idx_chat_user;index;type:char(20);not null;comment:会话uuid"`
	UserLogin string `gorm:"column:user_login;uniqueIndex:idx_chat_user;index;type:varchar(50);not null;comment:成员登录名"`
}

// TableName 指定表名
func (ChatMember) TableName() string {
	return "chat_member"
}
