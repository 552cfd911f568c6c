package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector/registry"
	"github.com/corvus-data/corvus/pkg/json"
	"github.com/corvus-data/corvus/pkg/load"
	"github.com/corvus-data/corvus/pkg/logger"
	"github.com/corvus-data/corvus/pkg/smartframe"

	// Register connector schemes.
	_ "github.com/corvus-data/corvus/pkg/connector/file"
	_ "github.com/corvus-data/corvus/pkg/connector/postgres"
)

var version = "0.1.0"

type rootFlags struct {
	configPath string
	engine     string
	privacy    bool
	logLevel   string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "corvus",
		Short: "Corvus - dataframe loading and preview toolkit",
		Long: `Corvus normalizes tabular sources (CSV, Parquet, Excel, Google Sheets,
database tables) into a canonical in-memory representation and produces
compact, privacy-aware previews for downstream consumers.`,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&flags.engine, "engine", "", "table engine (mem, records, arrow)")
	root.PersistentFlags().BoolVar(&flags.privacy, "privacy", false, "enforce privacy (zero-row previews)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Corvus v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "head <source>",
		Short: "Print the sample head of a tabular source as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFrame(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			out, err := f.HeadCSV(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "hash <source>",
		Short: "Print the column fingerprint of a tabular source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFrame(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			fmt.Println(f.ColumnHash())
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "info <source>",
		Short: "Print table shape and engine information as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one source argument")
			}
			f, err := newFrame(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}

			rows, err := f.RowsCount(cmd.Context())
			if err != nil {
				return err
			}
			cols, err := f.ColumnsCount(cmd.Context())
			if err != nil {
				return err
			}

			info := map[string]interface{}{
				"name":    f.Name(),
				"engine":  f.Engine(),
				"rows":    rows,
				"columns": cols,
				"hash":    f.ColumnHash(),
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// newFrame builds a Frame over a source descriptor with the resolved
// configuration. Scheme-prefixed descriptors (file:..., postgres://...)
// resolve through the connector registry and stay deferred; bare paths load
// eagerly.
func newFrame(ctx context.Context, flags *rootFlags, source string) (*smartframe.Frame, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	}); err != nil {
		return nil, err
	}

	if hasConnectorScheme(source) {
		conn, err := registry.Open(ctx, source, cfg)
		if err != nil {
			return nil, err
		}
		f, err := smartframe.New(load.FromConnector(conn), smartframe.WithConfig(cfg))
		if err != nil {
			return nil, err
		}
		if err := f.LoadConnector(ctx, false); err != nil {
			return nil, err
		}
		return f, nil
	}

	return smartframe.New(load.FromPath(source), smartframe.WithConfig(cfg))
}

// hasConnectorScheme reports whether the descriptor names a registered
// connector scheme. Spreadsheet URLs are not connector descriptors; they
// route through the path importer.
func hasConnectorScheme(source string) bool {
	if strings.HasPrefix(source, load.SheetsURLPrefix) {
		return false
	}
	scheme, _, ok := strings.Cut(source, ":")
	if !ok {
		return false
	}
	for _, s := range registry.Schemes() {
		if s == scheme {
			return true
		}
	}
	return false
}

func resolveConfig(flags *rootFlags) (*config.Config, error) {
	cfg := config.New()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.privacy {
		cfg.EnforcePrivacy = true
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
