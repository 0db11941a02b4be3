package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/config"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.SessionRepository { return s.Sessions() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.BasketRepository { return s.Baskets() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.PaymentRepository { return s.Payments() },
		func(s *Storage) repository.PromoRepository { return s.Promos() },
		func(s *Storage) repository.DeliveryRepository { return s.Deliveries() },
		func(s *Storage) repository.WalletRepository { return s.Wallets() },
		func(s *Storage) repository.LoyaltyRepository { return s.Loyalty() },
		func(s *Storage) repository.FinanceRepository { return s.Finance() },
		func(s *Storage) repository.ChatRepository { return s.Chats() },
		func(s *Storage) repository.NotificationRepository { return s.Notifications() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
