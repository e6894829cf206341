// Package model 定义数据库实体模型
// 本文件定义用户模型，登录名是贯穿全系统的用户身份键
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 用户模型
// 对应数据库 user 表
type User struct {
	gorm.Model

	// Login 登录名，全局唯一，关系表/成员表/消息表都以它引用用户
	Login string `gorm:"column:login;uniqueIndex;type:varchar(50);not null;comment:登录名"`

	// Telephone 手机号码（可选）
	Telephone string `gorm:"column:telephone;type:char(16);comment:电话"`

	// Status 自由文本状态，用户可随时更新
	Status string `gorm:"column:status;type:varchar(140);comment:状态文本"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
// plaintext: 用户输入的明文密码
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
