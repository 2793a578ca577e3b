package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/aptcare/pkg/jwt"
)

// SessionStore 登录会话存储
type SessionStore interface {
	SaveSession(ctx context.Context, sess redis.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 登录用例
// 设计说明：
// 1. 保洁员按姓名登录，同一事务内查找或创建用户并生成当天清单
// 2. 管理员用户名+密码登录
// 3. 会话保存失败不影响登录，只记录日志
type LoginUseCase struct {
	userService  user.Service
	checklists   *appchecklist.ChecklistUseCase
	txManager    *mysql.TxManager
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase 创建登录用例
// 会话有效期 = Refresh Token有效期
func NewLoginUseCase(
	userService user.Service,
	checklists *appchecklist.ChecklistUseCase,
	txManager *mysql.TxManager,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		checklists:   checklists,
		txManager:    txManager,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// OperatorLogin 保洁员登录
// 公寓或模板不存在时整个登录回滚，不会留下新建的保洁员
func (uc *LoginUseCase) OperatorLogin(ctx context.Context, req OperatorLoginRequest) (*LoginResponse, error) {
	var (
		operator    *user.User
		checklistID uint
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查找或创建保洁员
		var err error
		operator, err = uc.userService.FindOrCreateOperator(txCtx, req.Name)
		if err != nil {
			return err
		}

		// 2. 生成清单（校验公寓、选择模板）
		info, err := uc.checklists.StartShift(txCtx, req.ApartmentID, operator.ID, req.Date)
		if err != nil {
			return err
		}
		checklistID = info.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.issue(ctx, operator, checklistID)
}

// ManagerLogin 管理员登录
func (uc *LoginUseCase) ManagerLogin(ctx context.Context, req ManagerLoginRequest) (*LoginResponse, error) {
	manager, err := uc.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, manager, 0)
}

// Refresh 用Refresh Token换新的Access Token
func (uc *LoginUseCase) Refresh(_ context.Context, refreshToken string) (string, error) {
	return uc.jwtManager.RefreshAccessToken(refreshToken)
}

// issue 生成Token并保存会话
func (uc *LoginUseCase) issue(ctx context.Context, u *user.User, checklistID uint) (*LoginResponse, error) {
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}

	sess := redis.Session{
		UserID:      u.ID,
		Name:        u.Name,
		Role:        string(u.Role),
		ChecklistID: checklistID,
		LoginAt:     time.Now(),
	}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.sessionTTL); err != nil {
		zap.L().Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         ToUserInfo(u),
		ChecklistID:  checklistID,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
// 1. 删除会话
// 2. Access Token加入黑名单，有效期为Token剩余时间
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return err
	}
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, claims.RemainingTTL(time.Now()))
}
