//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"listy/internal/infrastructure/config"
)

var providerSet = wire.NewSet(
	ProvideConfig,
	ProvideClient,
	ProvideStore,
	ProvideRegistry,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer sets up all dependencies with the default config
// location.
func InitializeContainer() (*Container, error) {
	wire.Build(ProvideLoader, providerSet)
	return nil, nil
}

// InitializeContainerWith sets up all dependencies with an explicit
// config loader (used for the --config flag).
func InitializeContainerWith(loader *config.Loader) (*Container, error) {
	wire.Build(providerSet)
	return nil, nil
}
