package auth

import (
	"go.uber.org/fx"

	"github.com/elijahkelechi/Beautytrendy-API/internal/config"
)

// Module wires the session token strategy.
var Module = fx.Provide(newStrategy)

func newStrategy(cfg *config.Config) Strategy {
	return NewHMACStrategy(cfg.AuthSecret, Options{TTL: cfg.TokenTTL})
}
