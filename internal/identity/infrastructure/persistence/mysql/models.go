package mysql

import (
	"github.com/wyfcoding/atlasvision/internal/identity/domain"
	"gorm.io/gorm"
)

// ShopModel MySQL 门店表映射
type ShopModel struct {
	gorm.Model
	ID       string `gorm:"primaryKey;type:varchar(36);column:id"`
	Name     string `gorm:"column:name;type:varchar(255);not null"`
	Address  string `gorm:"column:address;type:varchar(512)"`
	Timezone string `gorm:"column:timezone;type:varchar(64)"`
}

func (ShopModel) TableName() string { return "shops" }

// UserModel MySQL 用户表映射
type UserModel struct {
	gorm.Model
	ID     string `gorm:"primaryKey;type:varchar(36);column:id"`
	ShopID string `gorm:"column:shop_id;type:varchar(36);index;not null"`
	Name   string `gorm:"column:name;type:varchar(255);not null"`
	Email  string `gorm:"column:email;type:varchar(255);uniqueIndex"`
}

func (UserModel) TableName() string { return "users" }

// --- mapping helpers ---

func toShopModel(s *domain.Shop) *ShopModel {
	if s == nil {
		return nil
	}
	return &ShopModel{
		ID:       s.ID,
		Name:     s.Name,
		Address:  s.Address,
		Timezone: s.Timezone,
	}
}

func toShop(m *ShopModel) *domain.Shop {
	if m == nil {
		return nil
	}
	shop := &domain.Shop{
		ID:       m.ID,
		Name:     m.Name,
		Address:  m.Address,
		Timezone: m.Timezone,
	}
	shop.CreatedAt = m.CreatedAt
	shop.UpdatedAt = m.UpdatedAt
	return shop
}

func toUserModel(u *domain.User) *UserModel {
	if u == nil {
		return nil
	}
	return &UserModel{
		ID:     u.ID,
		ShopID: u.ShopID,
		Name:   u.Name,
		Email:  u.Email,
	}
}

func toUser(m *UserModel) *domain.User {
	if m == nil {
		return nil
	}
	user := &domain.User{
		ID:     m.ID,
		ShopID: m.ShopID,
		Name:   m.Name,
		Email:  m.Email,
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return user
}
