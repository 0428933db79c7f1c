package ports

import "github.com/kubeaccel/dockforge/internal/core/config"

// ConfigSource reads raw configuration records from an uploaded document.
// The loader accepts records from any source matching the column schema;
// the file format behind them is the adapter's concern.
type ConfigSource interface {
	Records(path string) ([]config.Record, error)
}
