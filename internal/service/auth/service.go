// Package auth 提供认证相关的业务逻辑
// 处理 Token 校验、刷新等功能
package auth

import (
	"context"

	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/dto/respond"
	"messenger_server/pkg/errorx"
	"messenger_server/pkg/util/jwt"
)

// Service 认证服务实现
type Service struct {
	cache myredis.CacheService // 缓存服务（依赖倒置）
}

// NewAuthService 创建认证服务实例
// cache: 缓存服务接口实例
func NewAuthService(cache myredis.CacheService) *Service {
	return &Service{
		cache: cache,
	}
}

// ValidateTokenID 验证用户的 Token ID 是否有效
// 用于实现单端登录互踢机制，登录时写入的 Token ID 覆盖旧值，旧 Refresh Token 随即失效
// userID: 用户登录名
// tokenID: 需要验证的 Token ID
// 返回: 是否有效, 错误信息
func (s *Service) ValidateTokenID(userID, tokenID string) (bool, error) {
	if s.cache == nil {
		// 未接缓存时退化为只校验签名
		return true, nil
	}
	redisKey := "user_token:" + userID
	validTokenID, err := s.cache.Get(context.Background(), redisKey)
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// Refresh 用 Refresh Token 换取新的 Access Token
// 只接受 subject 为 refresh_token 的令牌，且其 Token ID 必须仍是该用户的当前值
func (s *Service) Refresh(refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "Refresh Token 无效")
	}
	if claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}
	ok, err := s.ValidateTokenID(claims.UserID, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 已失效，请重新登录")
	}
	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "生成 Access Token 失败")
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}
