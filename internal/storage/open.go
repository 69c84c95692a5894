package storage

import (
	"fmt"

	"github.com/mlefevre/diabecare/internal/config"
	"github.com/mlefevre/diabecare/internal/domain"
	"github.com/mlefevre/diabecare/internal/storage/postgreskv"
	"github.com/mlefevre/diabecare/internal/storage/rediskv"
	"github.com/mlefevre/diabecare/internal/storage/sqlitekv"
)

// Open creates the key-value backend selected by configuration.
func Open(cfg config.StorageConfig) (domain.KVStore, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlitekv.NewFileStore(cfg.SQLitePath)
	case "redis":
		return rediskv.NewStore(cfg.Redis.Host, cfg.Redis.Port)
	case "postgres":
		return postgreskv.NewStore(cfg.DB)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
