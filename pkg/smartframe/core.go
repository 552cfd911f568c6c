// Package smartframe owns the dataframe loading state machine. A Core
// holds the canonical table (or a deferred connector reference), tracks
// which engine produced it, and exposes copy-on-read access. The Frame
// facade in this package is the surface the query engine consumes.
//
// The load states are: unloaded (a connector is present, nothing
// materialized), loaded, and loaded-temporary. Temporary loads are one-shot
// materializations: the first dataframe read returns the copy and then
// discards the owned table, keeping the connector for the next fetch.
package smartframe

import (
	"context"

	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
	"github.com/corvus-data/corvus/pkg/load"
	"github.com/corvus-data/corvus/pkg/metrics"
)

// Core is the dataframe state holder. It is not safe for concurrent use;
// callers sharing a Core across goroutines must serialize access
// externally. The copy-on-read pattern exists so concurrent readers
// elsewhere can hold independent copies.
type Core struct {
	cfg *config.Config
	log *zap.Logger

	df        frame.Table
	engine    frame.Engine
	conn      connector.Connector
	loaded    bool
	temporary bool
}

// NewCore creates a state holder and performs the initial load.
func NewCore(src load.Source, cfg *config.Config, log *zap.Logger) (*Core, error) {
	c := &Core{cfg: cfg, log: log}
	if err := c.Load(src); err != nil {
		return nil, err
	}
	return c, nil
}

// Load routes a connector source to the deferred state without
// materializing anything, and everything else through normalization and
// engine validation. On failure the holder keeps its prior state.
func (c *Core) Load(src load.Source) error {
	if src.Kind() == load.KindConnector {
		conn := src.Connector()
		conn.SetLogger(c.log)

		c.df = nil
		c.loaded = false
		c.temporary = false
		c.conn = conn

		metrics.LoadsTotal.WithLabelValues(src.Kind().String(), "success").Inc()
		c.log.Debug("connector source recorded as deferred",
			zap.String("connector", conn.Name()))
		return nil
	}

	return c.SetDataframe(src)
}

// SetDataframe normalizes a non-connector source, detects and validates its
// engine, and reassigns the owned table. All failures surface here, at load
// time, so reads never fail for data-shape reasons.
func (c *Core) SetDataframe(src load.Source) error {
	t, err := load.Normalize(src, c.cfg)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues(src.Kind().String(), "error").Inc()
		return err
	}

	engine, err := frame.Detect(t)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues(src.Kind().String(), "error").Inc()
		return err
	}
	if err := frame.Validate(engine, c.cfg); err != nil {
		metrics.LoadsTotal.WithLabelValues(src.Kind().String(), "error").Inc()
		return err
	}

	c.df = t
	c.engine = engine
	c.loaded = true

	metrics.LoadsTotal.WithLabelValues(src.Kind().String(), "success").Inc()
	c.log.Debug("dataframe loaded",
		zap.String("source_kind", src.Kind().String()),
		zap.String("engine", string(engine)),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()))
	return nil
}

// LoadConnector materializes the connector's table into the holder. With
// temporary set, the connector is unbound again after the next dataframe
// read, forcing a re-fetch on the access after that.
func (c *Core) LoadConnector(ctx context.Context, temporary bool) error {
	if c.conn == nil {
		return errors.New(errors.ErrorTypeInternal, "no connector to load")
	}

	t, err := c.conn.Execute(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "connector execution failed")
	}

	if err := c.SetDataframe(load.FromTable(t)); err != nil {
		return err
	}
	c.temporary = temporary
	return nil
}

// unloadConnector clears the owned table and resets to the unloaded state.
// The connector itself is retained.
func (c *Core) unloadConnector() {
	c.df = nil
	c.loaded = false
	c.temporary = false
	metrics.ConnectorUnloads.Inc()
}

// Dataframe returns a deep copy of the owned table, never the internal
// reference; mutating the returned table cannot affect subsequent reads.
// A temporary load is unbound after the copy is produced. When the holder
// is unloaded and connector-backed the result is nil, signaling "not yet
// materialized" rather than failing; resolution is left to the caller.
func (c *Core) Dataframe() frame.Table {
	if !c.loaded {
		return nil
	}

	out := c.df.Clone()
	metrics.DataframeReads.Inc()

	if c.conn != nil && c.temporary {
		c.unloadConnector()
	}
	return out
}

// Engine returns the engine tag of the owned table.
func (c *Core) Engine() frame.Engine {
	return c.engine
}

// Connector returns the deferred source, or nil.
func (c *Core) Connector() connector.Connector {
	return c.conn
}

// SetConnector replaces the deferred source.
func (c *Core) SetConnector(conn connector.Connector) {
	if conn != nil {
		conn.SetLogger(c.log)
	}
	c.conn = conn
}

// HasConnector reports whether a deferred source is present.
func (c *Core) HasConnector() bool {
	return c.conn != nil
}

// Loaded reports whether an owned table is materialized.
func (c *Core) Loaded() bool {
	return c.loaded
}
