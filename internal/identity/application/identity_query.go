package application

import (
	"context"

	"github.com/wyfcoding/atlasvision/internal/identity/domain"
)

// ShopDTO 门店 DTO
type ShopDTO struct {
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// UserDTO 用户 DTO
type UserDTO struct {
	UserID    string `json:"user_id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// ShopListDTO 门店分页 DTO
type ShopListDTO struct {
	Total int64      `json:"total"`
	Items []*ShopDTO `json:"items"`
}

// UserListDTO 用户分页 DTO
type UserListDTO struct {
	Total int64      `json:"total"`
	Items []*UserDTO `json:"items"`
}

// IdentityQueryService 处理门店与用户的查询操作（Queries）。
type IdentityQueryService struct {
	shopRepo domain.ShopRepository
	userRepo domain.UserRepository
}

// NewIdentityQueryService 构造函数。
func NewIdentityQueryService(
	shopRepo domain.ShopRepository,
	userRepo domain.UserRepository,
) *IdentityQueryService {
	return &IdentityQueryService{
		shopRepo: shopRepo,
		userRepo: userRepo,
	}
}

// GetShop 按 ID 查询门店，未找到时返回 (nil, nil)。
func (q *IdentityQueryService) GetShop(ctx context.Context, id string) (*ShopDTO, error) {
	shop, err := q.shopRepo.Get(ctx, id)
	if err != nil || shop == nil {
		return nil, err
	}
	return toShopDTO(shop), nil
}

// ListShops 分页查询门店。
func (q *IdentityQueryService) ListShops(ctx context.Context, page, size int) (*ShopListDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	shops, total, err := q.shopRepo.List(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*ShopDTO, 0, len(shops))
	for _, s := range shops {
		items = append(items, toShopDTO(s))
	}
	return &ShopListDTO{Total: total, Items: items}, nil
}

// ListUsers 按门店分页查询用户。
func (q *IdentityQueryService) ListUsers(ctx context.Context, shopID string, page, size int) (*UserListDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	users, total, err := q.userRepo.ListByShop(ctx, shopID, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, toUserDTO(u))
	}
	return &UserListDTO{Total: total, Items: items}, nil
}

// GetUser 按 ID 查询用户，未找到时返回 (nil, nil)。
func (q *IdentityQueryService) GetUser(ctx context.Context, id string) (*UserDTO, error) {
	user, err := q.userRepo.Get(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func toShopDTO(s *domain.Shop) *ShopDTO {
	if s == nil {
		return nil
	}
	return &ShopDTO{
		ShopID:    s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Timezone:  s.Timezone,
		CreatedAt: s.CreatedAt.Unix(),
	}
}

func toUserDTO(u *domain.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UserID:    u.ID,
		ShopID:    u.ShopID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Unix(),
	}
}
