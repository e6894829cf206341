package repository

import (
	"errors"

	"messenger_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBErrorf(err, "创建用户 login=%s", user.Login)
	}
	return nil
}

// FindByLogin 按登录名查找用户
func (r *userRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 login=%s", login)
	}
	return &user, nil
}

// ExistsByLogin 判断登录名是否存在
func (r *userRepository) ExistsByLogin(login string) (bool, error) {
	var user model.User
	err := r.db.Select("id").Where("login = ?", login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, wrapDBErrorf(err, "查询用户是否存在 login=%s", login)
	}
	return true, nil
}

// FindByLogins 批量按登录名查找用户
func (r *userRepository) FindByLogins(logins []string) ([]model.User, error) {
	if len(logins) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	if err := r.db.Where("login IN ?", logins).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// UpdateStatus 更新用户状态文本
func (r *userRepository) UpdateStatus(login, status string) error {
	if err := r.db.Model(&model.User{}).Where("login = ?", login).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新用户状态 login=%s", login)
	}
	return nil
}

// DeleteByLogin 删除用户
// 物理删除而非软删除，否则登录名上的唯一索引会阻止重新注册
func (r *userRepository) DeleteByLogin(login string) error {
	if err := r.db.Unscoped().Where("login = ?", login).Delete(&model.User{}).Error; err != nil {
		return wrapDBErrorf(err, "删除用户 login=%s", login)
	}
	return nil
}
