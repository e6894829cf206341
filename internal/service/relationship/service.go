// Package relationship 提供联系人与黑名单的业务逻辑
// 两张名单互相独立：拉黑不会移除联系人关系，反之亦然
package relationship

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"messenger_server/internal/dao/mysql/repository"
	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/dto/respond"
	"messenger_server/internal/model"
	"messenger_server/pkg/constants"
	"messenger_server/pkg/enum/relation/relation_type_enum"
	"messenger_server/pkg/errorx"
)

// Service 关系服务实现
type Service struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewRelationshipService 创建关系服务实例
func NewRelationshipService(repos *repository.Repositories, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, cache: cache}
}

// AddContact 添加联系人
// 重复添加是无害的幂等操作，target 不存在返回 CodeUnknownUser
func (s *Service) AddContact(owner, target string) error {
	return s.addRelation(owner, target, relation_type_enum.CONTACT)
}

// RemoveContact 移除联系人，target 不在列表中时静默成功
func (s *Service) RemoveContact(owner, target string) error {
	return s.removeRelation(owner, target, relation_type_enum.CONTACT)
}

// AddBlocked 添加黑名单
// 禁止拉黑自己，target 不存在返回 CodeUnknownUser
func (s *Service) AddBlocked(owner, target string) error {
	return s.addRelation(owner, target, relation_type_enum.BLOCK)
}

// RemoveBlocked 移除黑名单，target 不在列表中时静默成功
func (s *Service) RemoveBlocked(owner, target string) error {
	return s.removeRelation(owner, target, relation_type_enum.BLOCK)
}

// addRelation 两类名单共用的添加逻辑
func (s *Service) addRelation(owner, target string, relType int8) error {
	if owner == target {
		return errorx.New(errorx.CodeInvalidParam, "不能对自己执行该操作")
	}
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		exists, err := txRepos.User.ExistsByLogin(target)
		if err != nil {
			return err
		}
		if !exists {
			return errorx.Newf(errorx.CodeUnknownUser, "用户 %s 不存在", target)
		}
		return txRepos.Relationship.CreateIfAbsent(&model.Relationship{
			OwnerLogin:  owner,
			TargetLogin: target,
			Type:        relType,
		})
	})
	if err != nil {
		return err
	}
	s.invalidateListCache(owner, relType)
	return nil
}

// removeRelation 两类名单共用的移除逻辑
func (s *Service) removeRelation(owner, target string, relType int8) error {
	affected, err := s.repos.Relationship.Delete(owner, target, relType)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.invalidateListCache(owner, relType)
	}
	return nil
}

// GetContactList 获取联系人列表
// 缓存旁路：先查缓存，未命中回源数据库并异步回填
func (s *Service) GetContactList(owner string) ([]respond.ContactListRespond, error) {
	cacheKey := "contact_list_" + owner
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey)
		if err == nil && cached != "" {
			var rsp []respond.ContactListRespond
			if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
				return rsp, nil
			}
			zap.L().Warn("联系人列表缓存数据损坏", zap.String("key", cacheKey))
		}
	}

	targets, err := s.repos.Relationship.FindTargetsByOwnerAndType(owner, relation_type_enum.CONTACT)
	if err != nil {
		return nil, err
	}
	users, err := s.repos.User.FindByLogins(targets)
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.ContactListRespond, 0, len(users))
	for _, u := range users {
		rsp = append(rsp, respond.ContactListRespond{
			Login:     u.Login,
			Telephone: u.Telephone,
			Status:    u.Status,
		})
	}

	s.fillListCache(cacheKey, rsp)
	return rsp, nil
}

// GetBlockedList 获取黑名单列表
func (s *Service) GetBlockedList(owner string) ([]string, error) {
	cacheKey := "blocked_list_" + owner
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey)
		if err == nil && cached != "" {
			var rsp []string
			if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
				return rsp, nil
			}
			zap.L().Warn("黑名单缓存数据损坏", zap.String("key", cacheKey))
		}
	}

	targets, err := s.repos.Relationship.FindTargetsByOwnerAndType(owner, relation_type_enum.BLOCK)
	if err != nil {
		return nil, err
	}
	if targets == nil {
		targets = []string{}
	}

	s.fillListCache(cacheKey, targets)
	return targets, nil
}

// fillListCache 异步回填列表缓存
func (s *Service) fillListCache(cacheKey string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		zap.L().Error("序列化列表缓存失败", zap.Error(err))
		return
	}
	s.cache.SubmitTask(func() {
		ttl := time.Minute * constants.REDIS_TIMEOUT
		if err := s.cache.Set(context.Background(), cacheKey, string(data), ttl); err != nil {
			zap.L().Error("回填列表缓存失败", zap.Error(err))
		}
	})
}

// invalidateListCache 异步失效 owner 对应类型的列表缓存
func (s *Service) invalidateListCache(owner string, relType int8) {
	if s.cache == nil {
		return
	}
	cacheKey := "contact_list_" + owner
	if relType == relation_type_enum.BLOCK {
		cacheKey = "blocked_list_" + owner
	}
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), cacheKey); err != nil {
			zap.L().Error("失效列表缓存失败", zap.Error(err))
		}
	})
}
