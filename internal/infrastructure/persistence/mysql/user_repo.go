package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/user"
)

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Name:         u.Name,
		Username:     stringPtr(u.Username),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return wrapDBError(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.notFound(err)
	}
	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := r.getDB(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, r.notFound(err)
	}
	return toUserEntity(&model), nil
}

// FindOperatorByName 根据姓名查找保洁员
func (r *userRepository) FindOperatorByName(ctx context.Context, name string) (*user.User, error) {
	var model UserModel
	err := r.getDB(ctx).
		Where("name = ? AND role = ?", name, string(user.RoleOperator)).
		First(&model).Error
	if err != nil {
		return nil, r.notFound(err)
	}
	return toUserEntity(&model), nil
}

// List 查询用户
func (r *userRepository) List(ctx context.Context, role *user.Role) ([]*user.User, error) {
	query := r.getDB(ctx).Model(&UserModel{})
	if role != nil {
		query = query.Where("role = ?", string(*role))
	}

	var models []UserModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

func (r *userRepository) notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrUserNotFound
	}
	return wrapDBError(err, "查询用户失败")
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:           model.ID,
		Name:         model.Name,
		Username:     stringValue(model.Username),
		PasswordHash: model.PasswordHash,
		Role:         user.Role(model.Role),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
