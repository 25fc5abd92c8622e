package config

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/materials-commons/mcsqa/internal/store"
	"github.com/materials-commons/mcsqa/internal/store/memory"
	"github.com/materials-commons/mcsqa/internal/store/remote"
	"github.com/materials-commons/mcsqa/internal/store/sqlite"
	"github.com/materials-commons/mcsqa/internal/store/xlsx"
)

// OpenStore opens the configured store. The returned func releases it and
// is never nil. A workbook or database that doesn't exist yet is created
// holding an empty template.
func (c *Config) OpenStore(ctx context.Context) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch c.Store.Driver {
	case DriverXLSX:
		if _, err := os.Stat(c.Store.Path); os.IsNotExist(err) {
			if err := xlsx.CreateTemplate(c.Store.Path, c.Template); err != nil {
				return nil, noop, err
			}
		}
		wb, err := xlsx.Open(c.Store.Path)
		if err != nil {
			return nil, noop, err
		}
		return wb, wb.Close, nil

	case DriverSQLite:
		db, err := sqlite.Open(c.Store.Path)
		if err != nil {
			return nil, noop, err
		}
		if err := db.EnsureTemplate(ctx, c.Template); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return db, db.Close, nil

	case DriverRemote:
		return remote.NewClient(c.Store.URL, c.Store.APIKey), noop, nil

	case DriverMemory:
		return memory.New(c.Template), noop, nil

	default:
		return nil, noop, errors.Errorf("unknown store.driver '%s'", c.Store.Driver)
	}
}
