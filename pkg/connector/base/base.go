// Package base provides the foundational Connector that concrete Corvus
// connectors embed. It carries the common fields (name, logger) and the
// fetch instrumentation so implementations only supply the source-specific
// operations.
//
// Usage:
//
//	type MyConnector struct {
//	    *base.Connector
//	    // source-specific fields
//	}
//
//	func NewMyConnector() *MyConnector {
//	    return &MyConnector{Connector: base.NewConnector("my-source")}
//	}
package base

import (
	"time"

	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/logger"
	"github.com/corvus-data/corvus/pkg/metrics"
)

// Connector provides common functionality for all connectors.
type Connector struct {
	name string
	log  *zap.Logger
}

// NewConnector creates a base connector with the given instance name.
func NewConnector(name string) *Connector {
	return &Connector{
		name: name,
		log:  logger.With(zap.String("connector", name)),
	}
}

// Name returns the connector instance name.
func (c *Connector) Name() string {
	return c.name
}

// SetLogger injects the logger used for connector diagnostics.
func (c *Connector) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log.With(zap.String("connector", c.name))
	}
}

// Logger returns the connector's logger.
func (c *Connector) Logger() *zap.Logger {
	if c.log == nil {
		c.log = logger.With(zap.String("connector", c.name))
	}
	return c.log
}

// ObserveFetch records a fetch operation's duration and outcome, and logs
// failures. Concrete connectors call it from Execute and Head.
func (c *Connector) ObserveFetch(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.ConnectorFetchDuration.WithLabelValues(c.name, op).Observe(elapsed.Seconds())

	if err != nil {
		c.Logger().Error("connector fetch failed",
			zap.String("operation", op),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return
	}
	c.Logger().Debug("connector fetch completed",
		zap.String("operation", op),
		zap.Duration("elapsed", elapsed))
}
