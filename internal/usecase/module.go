package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/config"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	pkgAuth "github.com/polkiloo/meatmarket/internal/pkg/auth"
)

func newPricerFromConfig(cfg *config.Config) *Pricer {
	return NewPricer(cfg.VATRate, cfg.DeliveryFee)
}

func newAuthFromConfig(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher pkgAuth.PasswordHasher,
	tokens pkgAuth.TokenGenerator,
	cfg *config.Config,
) *AuthUseCase {
	return NewAuthUseCase(users, sessions, hasher, tokens, cfg.SessionTTL)
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPricerFromConfig,
	newAuthFromConfig,
	NewCatalogUseCase,
	NewPromoUseCase,
	NewBasketUseCase,
	NewCheckoutUseCase,
	NewOrderUseCase,
	NewDeliveryUseCase,
	NewWalletUseCase,
	NewLoyaltyUseCase,
	NewFinanceUseCase,
	NewChatUseCase,
	NewNotificationUseCase,
)
