// Package model 定义数据库实体模型
// 本文件定义会话模型
package model

import (
	"gorm.io/gorm"
)

// Chat 会话模型
// 对应数据库 chat 表
// Type 在创建时根据初始成员数确定（2人为 private，更多为 group），之后不变
type Chat struct {
	gorm.Model

	// Uuid 会话唯一标识
	// 格式：C + 时间戳随机字符串，如 "C260830aB3dE9xk2P"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:会话唯一id"`

	// Type 会话类型，见 chat_type_enum
	Type string `gorm:"column:type;type:varchar(10);not null;comment:会话类型，private/group"`

	// OwnerLogin 创建者登录名，唯一拥有成员管理和解散权限
	OwnerLogin string `gorm:"column:owner_login;index;type:varchar(50);not null;comment:创建者登录名"`
}

// TableName 指定表名
func (Chat) TableName() string {
	return "chat"
}
