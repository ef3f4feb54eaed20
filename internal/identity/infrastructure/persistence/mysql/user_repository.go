package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/atlasvision/internal/identity/domain"
	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"gorm.io/gorm"
)

// userRepository 用户仓储的 MySQL 实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// getDB 从上下文中获取事务或返回默认连接。
func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Save 保存用户(存在则更新,不存在则创建)。
func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	model := toUserModel(user)

	var existing UserModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.getDB(ctx).WithContext(ctx).Create(model).Error
		}
		return err
	}

	model.Model.ID = existing.Model.ID
	model.CreatedAt = existing.CreatedAt
	return r.getDB(ctx).WithContext(ctx).Save(model).Error
}

// Get 根据 ID 获取用户,未找到时返回 nil。
func (r *userRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUser(&model), nil
}

// GetByEmail 根据邮箱获取用户,未找到时返回 nil。
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel
	err := r.getDB(ctx).WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUser(&model), nil
}

// ListByShop 按门店分页查询用户。
func (r *userRepository) ListByShop(ctx context.Context, shopID string, offset, limit int) ([]*domain.User, int64, error) {
	query := r.getDB(ctx).WithContext(ctx).Model(&UserModel{}).Where("shop_id = ?", shopID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []UserModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, toUser(&models[i]))
	}
	return users, total, nil
}
