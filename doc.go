// Package corvus provides a dataframe-loading and state-management layer
// that sits between user-supplied tabular sources and a higher-level query
// engine.
//
// Corvus normalizes heterogeneous inputs (in-memory tables, files, remote
// connectors, raw record lists or column mappings) into one canonical table
// representation, tracks which table backend produced it, and exposes a
// safe, copy-on-read view of the data while optionally deferring
// materialization to a connector.
//
// # Architecture
//
// The layer is organized around a small set of packages:
//
//   - frame: the canonical Table interface and its three backends — the
//     eager mem and records engines and the Apache Arrow columnar engine —
//     plus engine detection, validation, and the column fingerprint.
//
//   - load: the closed set of supported input shapes and the file readers
//     (CSV, Parquet, Excel, Google Sheets).
//
//   - connector: the deferred-source contract and implementations over
//     local files and PostgreSQL tables.
//
//   - sample: representative row sampling and privacy-aware truncation for
//     compact previews.
//
//   - smartframe: the loading state machine (direct load, lazy connector
//     load, temporary load-and-unload) and the facade the query engine
//     consumes.
//
// # Quick Start
//
// Load a CSV file and read its preview:
//
//	f, err := smartframe.New(load.FromPath("payments.csv"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	head, err := f.HeadCSV(ctx)
//
// Defer a database table and materialize it for one use:
//
//	conn, err := postgres.New(ctx, dsn, "payments", cfg)
//	f, err := smartframe.New(load.FromConnector(conn), smartframe.WithConfig(cfg))
//	err = f.LoadConnector(ctx, true)
//	df := f.Dataframe() // first read returns a copy, then unloads
package corvus
