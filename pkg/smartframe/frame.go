package smartframe

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
	"github.com/corvus-data/corvus/pkg/load"
	"github.com/corvus-data/corvus/pkg/logger"
	"github.com/corvus-data/corvus/pkg/metrics"
	"github.com/corvus-data/corvus/pkg/sample"
)

// Frame is the facade the query engine consumes. Every forwarded operation
// is an enumerated method; there is no catch-all delegation to the
// underlying table, so the supported surface stays auditable.
//
// Sample heads are computed on demand and cached for the Frame's lifetime;
// recomputation requires a fresh Frame.
type Frame struct {
	core *Core
	cfg  *config.Config
	log  *zap.Logger

	name        string
	description string
	customHead  frame.Table
	sampler     sample.Sampler

	headTable frame.Table
	headBuilt bool

	headCSV      string
	headCSVBuilt bool

	headJSON      string
	headJSONBuilt bool
}

// Option configures a Frame at construction time.
type Option func(*Frame)

// WithName sets the table name used in downstream descriptions.
func WithName(name string) Option {
	return func(f *Frame) { f.name = name }
}

// WithDescription sets the table description.
func WithDescription(description string) Option {
	return func(f *Frame) { f.description = description }
}

// WithCustomHead supplies an explicit preview table. A custom head is used
// verbatim by the head builder, bypassing sampling and truncation.
func WithCustomHead(head frame.Table) Option {
	return func(f *Frame) {
		if head != nil {
			f.customHead = head.Clone()
		}
	}
}

// WithConfig sets the configuration; defaults to config.New().
func WithConfig(cfg *config.Config) Option {
	return func(f *Frame) { f.cfg = cfg }
}

// WithLogger sets the logger; defaults to the global logger.
func WithLogger(log *zap.Logger) Option {
	return func(f *Frame) { f.log = log }
}

// WithSampler replaces the default preview sampler.
func WithSampler(s sample.Sampler) Option {
	return func(f *Frame) { f.sampler = s }
}

// New creates a Frame over the given source. Loading happens eagerly for
// everything except connector sources, which stay deferred until
// LoadConnector is called.
func New(src load.Source, opts ...Option) (*Frame, error) {
	f := &Frame{
		cfg:     config.New(),
		sampler: sample.DefaultSampler{},
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid configuration")
	}
	if f.log == nil {
		f.log = logger.With(zap.String("component", "smartframe"))
	}

	core, err := NewCore(src, f.cfg, f.log)
	if err != nil {
		return nil, err
	}
	f.core = core

	// Fall back to the connector's name when none was provided.
	if f.name == "" && core.HasConnector() {
		f.name = core.Connector().Name()
	}

	return f, nil
}

// Dataframe returns a deep copy of the owned table, or nil when the holder
// is unloaded and connector-backed. See Core.Dataframe for the temporary
// unload transition.
func (f *Frame) Dataframe() frame.Table {
	return f.core.Dataframe()
}

// Engine returns the engine tag of the owned table.
func (f *Frame) Engine() frame.Engine {
	return f.core.Engine()
}

// Connector returns the deferred source, or nil.
func (f *Frame) Connector() connector.Connector {
	return f.core.Connector()
}

// SetConnector replaces the deferred source.
func (f *Frame) SetConnector(conn connector.Connector) {
	f.core.SetConnector(conn)
}

// HasConnector reports whether a deferred source is present.
func (f *Frame) HasConnector() bool {
	return f.core.HasConnector()
}

// Load re-enters normalization and engine validation, reassigning the
// owned table or the deferred connector.
func (f *Frame) Load(src load.Source) error {
	return f.core.Load(src)
}

// LoadConnector materializes the connector's table. With temporary set,
// the table is discarded again after its first Dataframe read.
func (f *Frame) LoadConnector(ctx context.Context, temporary bool) error {
	return f.core.LoadConnector(ctx, temporary)
}

// ColumnHash returns the stable fingerprint of the table's column names.
// When the holder is unloaded and connector-backed the connector's own
// column hash is used instead.
func (f *Frame) ColumnHash() string {
	if !f.core.Loaded() && f.core.HasConnector() {
		return f.core.Connector().ColumnHash()
	}
	if !f.core.Loaded() {
		return ""
	}
	return frame.ColumnHash(f.core.df)
}

// RowsCount returns the table's row count, delegating to the connector
// when the table is not materialized.
func (f *Frame) RowsCount(ctx context.Context) (int64, error) {
	if f.core.Loaded() {
		return int64(f.core.df.NumRows()), nil
	}
	if f.core.HasConnector() {
		return f.core.Connector().RowsCount(ctx)
	}
	return 0, errors.New(errors.ErrorTypeData,
		"cannot determine rows count; no dataframe or connector loaded")
}

// ColumnsCount returns the table's column count, delegating to the
// connector when the table is not materialized.
func (f *Frame) ColumnsCount(ctx context.Context) (int, error) {
	if f.core.Loaded() {
		return f.core.df.NumCols(), nil
	}
	if f.core.HasConnector() {
		return f.core.Connector().ColumnsCount(ctx)
	}
	return 0, errors.New(errors.ErrorTypeData,
		"cannot determine columns count; no dataframe or connector loaded")
}

// HeadTable returns the sample head, computing it on first use and caching
// it for the Frame's lifetime. A nil table with nil error means no preview
// is available.
func (f *Frame) HeadTable(ctx context.Context) (frame.Table, error) {
	if f.headBuilt {
		if f.headTable == nil {
			return nil, nil
		}
		return f.headTable.Clone(), nil
	}

	head, err := f.buildHead(ctx)
	if err != nil {
		return nil, err
	}

	f.headTable = head
	f.headBuilt = true
	if head == nil {
		return nil, nil
	}
	return head.Clone(), nil
}

// HeadCSV returns the sample head serialized as CSV, cached alongside the
// head table.
func (f *Frame) HeadCSV(ctx context.Context) (string, error) {
	if f.headCSVBuilt {
		return f.headCSV, nil
	}

	head, err := f.HeadTable(ctx)
	if err != nil {
		return "", err
	}
	if head == nil {
		f.headCSVBuilt = true
		return "", nil
	}

	out, err := frame.ToCSV(head)
	if err != nil {
		return "", err
	}
	f.headCSV = out
	f.headCSVBuilt = true
	return out, nil
}

// HeadJSON returns the sample head serialized as a JSON array of row
// records, cached alongside the head table.
func (f *Frame) HeadJSON(ctx context.Context) (string, error) {
	if f.headJSONBuilt {
		return f.headJSON, nil
	}

	head, err := f.HeadTable(ctx)
	if err != nil {
		return "", err
	}
	if head == nil {
		f.headJSONBuilt = true
		return "", nil
	}

	out, err := frame.ToJSON(head)
	if err != nil {
		return "", err
	}
	f.headJSON = out
	f.headJSONBuilt = true
	return out, nil
}

// buildHead implements the sample head pipeline: custom head passthrough,
// row budgeting under privacy, connector preview fallback, sampling, and
// column truncation.
func (f *Frame) buildHead(ctx context.Context) (frame.Table, error) {
	metrics.HeadBuilds.WithLabelValues(strconv.FormatBool(f.cfg.EnforcePrivacy)).Inc()

	// An explicit user-provided preview is used verbatim.
	if f.customHead != nil {
		return f.customHead.Clone(), nil
	}

	rowBudget := f.cfg.HeadRows()

	var head frame.Table
	switch {
	case !f.core.Loaded() && f.core.HasConnector():
		var err error
		head, err = f.core.Connector().Head(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConnection, "connector head failed")
		}
	case f.core.Loaded():
		head = f.core.df.Head(rowBudget)
	}

	if head == nil {
		return nil, nil
	}

	sampled, err := f.sampler.Sample(head, rowBudget)
	if err != nil {
		return nil, err
	}

	// Under privacy enforcement the sampled table carries no rows and must
	// not be altered further.
	if f.cfg.EnforcePrivacy {
		return sampled, nil
	}

	return sample.TruncateColumns(sampled, f.cfg.Sampling.MaxCellWidth, f.cfg)
}

// Name returns the table name.
func (f *Frame) Name() string {
	return f.name
}

// Description returns the table description.
func (f *Frame) Description() string {
	return f.description
}

// CustomHead returns a copy of the user-provided preview, or nil.
func (f *Frame) CustomHead() frame.Table {
	if f.customHead == nil {
		return nil
	}
	return f.customHead.Clone()
}

// Equals reports whether two frames address the same source. Only frames
// that are both connector-backed compare equal, via connector equality;
// everything else is false.
func (f *Frame) Equals(other *Frame) bool {
	if other == nil {
		return false
	}
	if f.HasConnector() && other.HasConnector() {
		return f.Connector().Equals(other.Connector())
	}
	return false
}
