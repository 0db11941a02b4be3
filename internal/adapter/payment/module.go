package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/config"
)

// Module wires the payment gateway client for fx runtime.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayAddress, p.Logger)
}
