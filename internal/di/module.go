package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/adapter/payment"
	"github.com/polkiloo/meatmarket/internal/app"
	"github.com/polkiloo/meatmarket/internal/cache/redis"
	"github.com/polkiloo/meatmarket/internal/config"
	"github.com/polkiloo/meatmarket/internal/events"
	"github.com/polkiloo/meatmarket/internal/logger"
	"github.com/polkiloo/meatmarket/internal/pkg/auth"
	"github.com/polkiloo/meatmarket/internal/server/http/handlers"
	"github.com/polkiloo/meatmarket/internal/server/http/router"
	"github.com/polkiloo/meatmarket/internal/storage/postgres"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		events.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
