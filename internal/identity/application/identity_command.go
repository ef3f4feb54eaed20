package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/atlasvision/internal/identity/domain"
	"github.com/wyfcoding/atlasvision/pkg/logging"
)

// CreateShopCommand 创建门店命令
type CreateShopCommand struct {
	Name     string
	Address  string
	Timezone string
}

// CreateUserCommand 创建用户命令
type CreateUserCommand struct {
	ShopID string
	Name   string
	Email  string
}

// IdentityCommandService 处理门店与用户的写入操作（Commands）。
type IdentityCommandService struct {
	shopRepo domain.ShopRepository
	userRepo domain.UserRepository
}

// NewIdentityCommandService 构造函数。
func NewIdentityCommandService(
	shopRepo domain.ShopRepository,
	userRepo domain.UserRepository,
) *IdentityCommandService {
	return &IdentityCommandService{
		shopRepo: shopRepo,
		userRepo: userRepo,
	}
}

// CreateShop 创建门店。
func (s *IdentityCommandService) CreateShop(ctx context.Context, cmd CreateShopCommand) (*ShopDTO, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("shop name is required")
	}

	shop := domain.NewShop(cmd.Name, cmd.Address, cmd.Timezone)
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to save shop: %w", err)
	}

	logging.Info(ctx, "Shop created", "shop_id", shop.ID, "name", shop.Name)
	return toShopDTO(shop), nil
}

// CreateUser 创建用户,邮箱在全局唯一。
func (s *IdentityCommandService) CreateUser(ctx context.Context, cmd CreateUserCommand) (*UserDTO, error) {
	if cmd.ShopID == "" {
		return nil, fmt.Errorf("shop_id is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	shop, err := s.shopRepo.Get(ctx, cmd.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, fmt.Errorf("shop %s not found", cmd.ShopID)
	}

	existing, err := s.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered", cmd.Email)
	}

	user := domain.NewUser(cmd.ShopID, cmd.Name, cmd.Email)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logging.Info(ctx, "User created", "user_id", user.ID, "shop_id", user.ShopID)
	return toUserDTO(user), nil
}
