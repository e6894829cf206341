package repository

import (
	"errors"

	"messenger_server/internal/model"

	"gorm.io/gorm"
)

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository 创建用户关系 Repository
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

// CreateIfAbsent 插入关系行，已存在时不做任何事
// FirstOrCreate 配合组合唯一索引实现集合语义，重复添加不报错也不产生新行
func (r *relationshipRepository) CreateIfAbsent(rel *model.Relationship) error {
	err := r.db.Where("owner_login = ? AND target_login = ? AND type = ?",
		rel.OwnerLogin, rel.TargetLogin, rel.Type).FirstOrCreate(rel).Error
	if err != nil {
		return wrapDBErrorf(err, "创建用户关系 owner=%s target=%s type=%d",
			rel.OwnerLogin, rel.TargetLogin, rel.Type)
	}
	return nil
}

// Delete 删除关系行，返回受影响的行数
// 物理删除，软删除的残留行会占用唯一索引导致无法重新添加
func (r *relationshipRepository) Delete(ownerLogin, targetLogin string, relType int8) (int64, error) {
	res := r.db.Unscoped().Where("owner_login = ? AND target_login = ? AND type = ?",
		ownerLogin, targetLogin, relType).Delete(&model.Relationship{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "删除用户关系 owner=%s target=%s type=%d",
			ownerLogin, targetLogin, relType)
	}
	return res.RowsAffected, nil
}

// Exists 判断关系行是否存在
func (r *relationshipRepository) Exists(ownerLogin, targetLogin string, relType int8) (bool, error) {
	var rel model.Relationship
	err := r.db.Select("id").Where("owner_login = ? AND target_login = ? AND type = ?",
		ownerLogin, targetLogin, relType).First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, wrapDBErrorf(err, "查询用户关系 owner=%s target=%s type=%d",
			ownerLogin, targetLogin, relType)
	}
	return true, nil
}

// FindTargetsByOwnerAndType 查找 owner 指定类型列表中的全部目标登录名
func (r *relationshipRepository) FindTargetsByOwnerAndType(ownerLogin string, relType int8) ([]string, error) {
	var targets []string
	err := r.db.Model(&model.Relationship{}).
		Where("owner_login = ? AND type = ?", ownerLogin, relType).
		Order("target_login").
		Pluck("target_login", &targets).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询关系列表 owner=%s type=%d", ownerLogin, relType)
	}
	return targets, nil
}

// DeleteByUser 删除引用指定用户的全部关系行（双向）
func (r *relationshipRepository) DeleteByUser(login string) error {
	err := r.db.Unscoped().Where("owner_login = ? OR target_login = ?", login, login).
		Delete(&model.Relationship{}).Error
	if err != nil {
		return wrapDBErrorf(err, "删除用户关系 login=%s", login)
	}
	return nil
}
