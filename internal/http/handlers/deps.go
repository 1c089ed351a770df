package handlers

import (
	"yourcar/internal/config"
	"yourcar/internal/schema"
	"yourcar/internal/services"
	"yourcar/internal/topcars"
)

type Deps struct {
	GraphQLHandler *GraphQLHandler
	TopCarsHandler *TopCarsHandler
}

func NewDeps(store services.CarStore, cfg config.Config) (*Deps, error) {
	carSvc := services.NewCarService(store)
	s, err := schema.New(carSvc)
	if err != nil {
		return nil, err
	}

	var client topcars.CarService = &topcars.LocalClient{Schema: s}
	if cfg.TopCarsEndpoint != "" {
		client = &topcars.RemoteClient{Endpoint: cfg.TopCarsEndpoint, Timeout: cfg.FetchTimeout}
	}

	return &Deps{
		GraphQLHandler: &GraphQLHandler{Schema: s},
		TopCarsHandler: &TopCarsHandler{Cars: client, Store: topcars.NewStore(), Timeout: cfg.FetchTimeout},
	}, nil
}
