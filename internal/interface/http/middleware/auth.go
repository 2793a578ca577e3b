package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/aptcare/internal/domain/user"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
	"github.com/xiebiao/aptcare/pkg/jwt"
	"github.com/xiebiao/aptcare/pkg/response"
)

// Context中的键
const (
	ContextUserID = "user_id"
	ContextName   = "name"
	ContextRole   = "role"
	ContextToken  = "token"
)

//go:generate mockgen -source=auth.go -destination=mock_blacklist_test.go -package=middleware TokenBlacklist

// TokenBlacklist 已登出Token的查询
// 由redis.SessionStore实现
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token并要求是Access Token
// 4. 将用户ID、姓名、角色注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := v1.Group("")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 2. 已登出的Token
		blacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, apperrors.ErrRedisError.WithCause(err))
			c.Abort()
			return
		}
		if blacklisted {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证签名和有效期
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		// Refresh Token只能用于刷新
		if claims.TokenType != jwt.TokenTypeAccess {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		// 4. 注入用户信息
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}

// RequireRole 要求指定角色，需放在RequireAuth之后
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := user.Role(GetRole(c))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, apperrors.ErrForbidden)
		c.Abort()
	}
}

// RequireManager 仅管理员
func (m *AuthMiddleware) RequireManager() gin.HandlerFunc {
	return m.RequireRole(user.RoleManager)
}

// =========================================
// Context辅助函数
// =========================================

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetRole 当前登录用户角色
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// GetName 当前登录用户姓名
func GetName(c *gin.Context) string {
	return c.GetString(ContextName)
}

// GetToken 当前请求的Access Token（登出时加入黑名单）
func GetToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
