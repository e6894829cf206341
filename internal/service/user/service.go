// Package user 提供用户账号相关的业务逻辑
// 处理注册、登录、状态更新和注销级联
package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"messenger_server/internal/dao/mysql/repository"
	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/dto/request"
	"messenger_server/internal/dto/respond"
	"messenger_server/internal/model"
	"messenger_server/pkg/constants"
	"messenger_server/pkg/errorx"
	"messenger_server/pkg/util/jwt"
)

// Service 用户服务实现
type Service struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 创建用户服务实例
func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, cache: cache}
}

// Register 用户注册
// 登录名全局唯一，重复注册返回 CodeUserExist
// 密码以 bcrypt 哈希落库，模型的 BeforeSave 钩子完成哈希
func (s *Service) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	exists, err := s.repos.User.ExistsByLogin(req.Login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorx.Newf(errorx.CodeUserExist, "登录名 %s 已被注册", req.Login)
	}
	newUser := &model.User{
		Login:       req.Login,
		Telephone:   req.Telephone,
		Status:      req.Status,
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(newUser); err != nil {
		return nil, err
	}
	zap.L().Info("用户注册成功", zap.String("login", newUser.Login))
	return &respond.RegisterRespond{
		Login:     newUser.Login,
		CreatedAt: newUser.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// Login 密码登录
// 成功后签发 Access/Refresh 双令牌，并把 Refresh Token 的 Token ID
// 写入缓存作为该用户唯一有效的会话凭证，旧登录随之被踢下线
func (s *Service) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	foundUser, err := s.repos.User.FindByLogin(req.Login)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeUnknownUser, "用户 %s 不存在", req.Login)
		}
		return nil, err
	}
	if !foundUser.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}
	accessToken, err := jwt.GenerateAccessToken(foundUser.Login)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "生成 Access Token 失败")
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(foundUser.Login)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "生成 Refresh Token 失败")
	}
	if s.cache != nil {
		redisKey := "user_token:" + foundUser.Login
		ttl := time.Hour * constants.REFRESH_TOKEN_EXPIRY_HOURS
		if err := s.cache.Set(context.Background(), redisKey, tokenID, ttl); err != nil {
			zap.L().Error("写入登录凭证失败", zap.Error(err))
			return nil, errorx.Wrap(err, errorx.CodeCacheError, "登录失败，请稍后重试")
		}
	}
	zap.L().Info("用户登录成功", zap.String("login", foundUser.Login))
	return &respond.LoginRespond{
		Login:        foundUser.Login,
		Telephone:    foundUser.Telephone,
		Status:       foundUser.Status,
		CreatedAt:    foundUser.CreatedAt.Format("2006-01-02 15:04:05"),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserInfo 获取单个用户信息
func (s *Service) GetUserInfo(login string) (*respond.UserInfoRespond, error) {
	foundUser, err := s.repos.User.FindByLogin(login)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeUnknownUser, "用户 %s 不存在", login)
		}
		return nil, err
	}
	return &respond.UserInfoRespond{
		Login:     foundUser.Login,
		Telephone: foundUser.Telephone,
		Status:    foundUser.Status,
		CreatedAt: foundUser.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// UpdateStatus 更新状态签名
// 状态文本会出现在他人的联系人列表里，异步失效相关缓存
func (s *Service) UpdateStatus(login, status string) error {
	if err := s.repos.User.UpdateStatus(login, status); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.SubmitTask(func() {
			if err := s.cache.DeleteByPattern(context.Background(), "contact_list_*"); err != nil {
				zap.L().Error("失效联系人列表缓存失败", zap.Error(err))
			}
		})
	}
	return nil
}

// DeleteAccount 注销账号
// 级联规则：
//  1. 本人创建的会话整体解散（消息、成员、会话一并删除）
//  2. 其他会话中仅移除本人的成员资格和本人发送的消息
//  3. 因移除而少于 2 人的会话同样解散
//  4. 清理引用本人的全部关系行，最后删除用户行
//
// 全部步骤在同一事务内完成，任何一步失败整体回滚
func (s *Service) DeleteAccount(login, password string) error {
	foundUser, err := s.repos.User.FindByLogin(login)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeUnknownUser, "用户 %s 不存在", login)
		}
		return err
	}
	if !foundUser.CheckPassword(password) {
		return errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		chatUuids, err := txRepos.ChatMember.FindChatUuidsByLogin(login)
		if err != nil {
			return err
		}
		for _, chatUuid := range chatUuids {
			foundChat, err := txRepos.Chat.FindByUuid(chatUuid)
			if err != nil {
				return errorx.Wrapf(err, errorx.CodeInconsistent, "注销级联读取会话失败 chatUuid=%s", chatUuid)
			}
			if foundChat.OwnerLogin == login {
				if err := dropChat(txRepos, chatUuid); err != nil {
					return err
				}
				continue
			}
			if err := txRepos.Message.SoftDeleteByChatAndSender(chatUuid, login); err != nil {
				return errorx.Wrapf(err, errorx.CodeInconsistent, "注销级联删除消息失败 chatUuid=%s", chatUuid)
			}
			if _, err := txRepos.ChatMember.Delete(chatUuid, login); err != nil {
				return errorx.Wrapf(err, errorx.CodeInconsistent, "注销级联移除成员失败 chatUuid=%s", chatUuid)
			}
			remaining, err := txRepos.ChatMember.CountByChatUuid(chatUuid)
			if err != nil {
				return err
			}
			if remaining < 2 {
				if err := dropChat(txRepos, chatUuid); err != nil {
					return err
				}
			}
		}
		if err := txRepos.Relationship.DeleteByUser(login); err != nil {
			return errorx.Wrap(err, errorx.CodeInconsistent, "注销级联清理关系失败")
		}
		if err := txRepos.User.DeleteByLogin(login); err != nil {
			return errorx.Wrap(err, errorx.CodeInconsistent, "注销删除用户失败")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.SubmitTask(func() {
			patterns := []string{"contact_list_*", "blocked_list_*", "chat_list_*"}
			if err := s.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
				zap.L().Error("注销失效缓存失败", zap.Error(err))
			}
			if err := s.cache.Delete(context.Background(), "user_token:"+login); err != nil {
				zap.L().Error("注销清理登录凭证失败", zap.Error(err))
			}
		})
	}
	zap.L().Info("用户注销成功", zap.String("login", login))
	return nil
}

// dropChat 在事务内整体删除一个会话（消息、成员、会话行）
func dropChat(txRepos *repository.Repositories, chatUuid string) error {
	if err := txRepos.Message.SoftDeleteByChatUuid(chatUuid); err != nil {
		return errorx.Wrapf(err, errorx.CodeInconsistent, "解散会话删除消息失败 chatUuid=%s", chatUuid)
	}
	if err := txRepos.ChatMember.DeleteByChatUuid(chatUuid); err != nil {
		return errorx.Wrapf(err, errorx.CodeInconsistent, "解散会话移除成员失败 chatUuid=%s", chatUuid)
	}
	if err := txRepos.Chat.SoftDeleteByUuid(chatUuid); err != nil {
		return errorx.Wrapf(err, errorx.CodeInconsistent, "解散会话失败 chatUuid=%s", chatUuid)
	}
	return nil
}
