package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 上报扫描的终端用户实体
type User struct {
	gorm.Model
	ID     string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ShopID string `gorm:"column:shop_id;type:varchar(36);index;not null" json:"shop_id"`
	Name   string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email  string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
}

func (User) TableName() string { return "users" }

// NewUser 创建用户
func NewUser(shopID, name, email string) *User {
	return &User{
		ID:     uuid.New().String(),
		ShopID: shopID,
		Name:   name,
		Email:  email,
	}
}

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByShop(ctx context.Context, shopID string, offset, limit int) ([]*User, int64, error)
}
