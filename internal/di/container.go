package di

import (
	"time"

	"listy/internal/api"
	"listy/internal/infrastructure/config"
	"listy/internal/state"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Loader *config.Loader

	Client *api.Client

	Store    *state.Store
	Registry *state.Registry
}

// Provider functions

func ProvideLoader() (*config.Loader, error) {
	return config.NewLoader()
}

func ProvideConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load()
}

func ProvideClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
}

func ProvideStore(client *api.Client) *state.Store {
	return state.NewStore(client)
}

func ProvideRegistry(client *api.Client) *state.Registry {
	return state.NewRegistry(client)
}
