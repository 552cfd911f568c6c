package file

import (
	"context"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/connector/registry"
)

func init() {
	registry.MustRegister("file", func(_ context.Context, descriptor string, cfg *config.Config) (connector.Connector, error) {
		return New(descriptor, cfg)
	})
}
