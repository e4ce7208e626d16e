package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	expireoption "github.com/common-repository/real-category-library-lite"
	"github.com/common-repository/real-category-library-lite/store"
)

// optionRow is a row of the per-tenant options table.
type optionRow struct {
	Name     string `gorm:"column:option_name;primaryKey"`
	Value    string `gorm:"column:option_value"`
	Autoload bool   `gorm:"column:autoload"`
}

func (optionRow) TableName() string {
	return "options"
}

// siteOptionRow is a row of the site-wide options table.
// Site-wide options carry no autoload hint.
type siteOptionRow struct {
	Name  string `gorm:"column:option_name;primaryKey"`
	Value string `gorm:"column:option_value"`
}

func (siteOptionRow) TableName() string {
	return "site_options"
}

// Store is an expireoption.OptionStore backed by a SQL options table, in
// the same shape the host keeps its options: one table per tenant scope,
// keyed by option name. The volatile transient cache is process-local, as
// it is on the host.
type Store struct {
	db          *gorm.DB
	multiTenant bool

	mu             sync.RWMutex
	transients     map[string]string
	siteTransients map[string]string
}

var _ expireoption.OptionStore = (*Store)(nil)

// New creates a store over an existing gorm connection and migrates the
// options tables.
func New(db *gorm.DB, opts ...Option) (*Store, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	if err := db.AutoMigrate(&optionRow{}, &siteOptionRow{}); err != nil {
		return nil, fmt.Errorf("migrating options tables: %w", err)
	}

	return &Store{
		db:             db,
		multiTenant:    options.multiTenant,
		transients:     map[string]string{},
		siteTransients: map[string]string{},
	}, nil
}

// Open opens (or creates) a SQLite database at path and builds a store
// over it. It uses a pure Go SQLite driver, so no CGO is required.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	return New(db, opts...)
}

// ReadOption retrieves a persistent option by name.
func (s *Store) ReadOption(ctx context.Context, name string, siteWide bool) (string, bool, error) {
	if siteWide {
		var row siteOptionRow
		err := s.db.WithContext(ctx).First(&row, "option_name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("%w: %w", store.ErrRead, err)
		}
		return row.Value, true, nil
	}

	var row optionRow
	err := s.db.WithContext(ctx).First(&row, "option_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", store.ErrRead, err)
	}
	return row.Value, true, nil
}

// WriteOption stores a persistent option, overwriting any existing row.
func (s *Store) WriteOption(ctx context.Context, name, value string, siteWide, autoload bool) error {
	var err error
	if siteWide {
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "option_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"option_value"}),
		}).Create(&siteOptionRow{Name: name, Value: value}).Error
	} else {
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "option_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"option_value", "autoload"}),
		}).Create(&optionRow{Name: name, Value: value, Autoload: autoload}).Error
	}
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrWrite, err)
	}
	return nil
}

// DeleteOption removes a persistent option by name.
// Deleting an absent row is not an error.
func (s *Store) DeleteOption(ctx context.Context, name string, siteWide bool) error {
	var err error
	if siteWide {
		err = s.db.WithContext(ctx).Delete(&siteOptionRow{}, "option_name = ?", name).Error
	} else {
		err = s.db.WithContext(ctx).Delete(&optionRow{}, "option_name = ?", name).Error
	}
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrDelete, err)
	}
	return nil
}

// ReadTransient retrieves a volatile cache entry by name.
func (s *Store) ReadTransient(_ context.Context, name string, siteWide bool) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.transientTable(siteWide)[name]
	return value, ok, nil
}

// DeleteTransient removes a volatile cache entry by name.
func (s *Store) DeleteTransient(_ context.Context, name string, siteWide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transientTable(siteWide), name)
	return nil
}

// MultiTenant reports whether the store serves a multi-tenant host.
func (s *Store) MultiTenant() bool {
	return s.multiTenant
}

// SetTransient plants a volatile cache entry. It stands in for the host's
// transient write, which the OptionStore contract does not expose.
func (s *Store) SetTransient(name, value string, siteWide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transientTable(siteWide)[name] = value
}

// Autoload reports the autoload hint recorded for the per-tenant option,
// or false if the option does not exist.
func (s *Store) Autoload(ctx context.Context, name string) (bool, error) {
	var row optionRow
	err := s.db.WithContext(ctx).First(&row, "option_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrRead, err)
	}
	return row.Autoload, nil
}

func (s *Store) transientTable(siteWide bool) map[string]string {
	if siteWide {
		return s.siteTransients
	}
	return s.transients
}
