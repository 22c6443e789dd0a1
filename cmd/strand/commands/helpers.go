package commands

import (
	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/errors"
	"github.com/calder-labs/strand/logger"
	"github.com/calder-labs/strand/service"
	"github.com/calder-labs/strand/store"
)

// openService loads the configuration, opens the configured store, and wires
// a service around it. The returned closer releases the store.
func openService() (*service.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	st, err := store.Open(cfg.Store, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open store")
	}

	svc := service.New(st, logger.Logger)
	return svc, func() { st.Close() }, nil
}
