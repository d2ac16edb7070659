package catalog

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinesearch/internal/adapter"
	"github.com/mmcdole/cinesearch/internal/adapter/catalog/omdb"
	"github.com/mmcdole/cinesearch/internal/domain"
)

// NewClient creates the catalog backend from OMDb settings
func NewClient(cfg *adapter.OMDbConfig, logger *slog.Logger) (domain.CatalogRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("omdb config is nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("omdb api key is required")
	}

	return omdb.NewClient(cfg.APIKey, omdb.Options{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Retries:           cfg.Retries,
	}, logger), nil
}

// NewClientFromConfig creates the catalog backend from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.CatalogRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	return NewClient(&cfg.OMDb, logger)
}
