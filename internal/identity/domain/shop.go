// 包 门店与用户的领域模型和仓储接口
package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop 门店实体
type Shop struct {
	gorm.Model
	ID       string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Address  string `gorm:"column:address;type:varchar(512)" json:"address"`
	Timezone string `gorm:"column:timezone;type:varchar(64)" json:"timezone"`
}

func (Shop) TableName() string { return "shops" }

// NewShop 创建门店
func NewShop(name, address, timezone string) *Shop {
	return &Shop{
		ID:       uuid.New().String(),
		Name:     name,
		Address:  address,
		Timezone: timezone,
	}
}

// ShopRepository 门店仓储接口
type ShopRepository interface {
	Save(ctx context.Context, shop *Shop) error
	Get(ctx context.Context, id string) (*Shop, error)
	List(ctx context.Context, offset, limit int) ([]*Shop, int64, error)
}
