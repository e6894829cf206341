// Package model 定义数据库实体模型
// 本文件定义用户关系模型，联系人和黑名单共用一张表
package model

import (
	"gorm.io/gorm"
)

// Relationship 用户关系模型
// 对应数据库 relationship 表
// 每行表示 owner 的联系人列表或黑名单中的一个成员
// 关系是单向的：A 拉黑 B 不影响 B 的任何列表
type Relationship struct {
	gorm.Model
	OwnerLogin  string `gorm:"column:owner_login;uniqueIndex:idx_owner_target_type;type:varchar(50);not null;comment:列表所有者登录名"`
	TargetLogin string `gorm:"column:target_login;uniqueIndex:idx_owner_target_type;index;type:varchar(50);not null;comment:目标用户登录名"`
	Type        int8   `gorm:"column:type;uniqueIndex:idx_owner_target_type;not null;comment:关系类型，0.联系人，1.黑名单"`
}

// TableName 指定表名
func (Relationship) TableName() string {
	return "relationship"
}
