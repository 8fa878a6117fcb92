package database

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"vowboard.io/planner-gateway/app/utils/logger"
)

type DatabaseMigration struct {
	gorm.Model
	Version int64 `gorm:"not null;uniqueIndex"`
}

// Migration upgrades the store to Version inside the migration transaction.
type Migration struct {
	Version int64
	Up      func(tx *gorm.DB) error
}

var migrations = []Migration{
	{
		Version: 1,
		// language used to be stored under "lang"
		Up: func(tx *gorm.DB) error {
			if !tx.Migrator().HasTable("preference") {
				return nil
			}
			return tx.Exec("UPDATE preference SET key = ? WHERE key = ?", "language", "lang").Error
		},
	},
}

type SchemaVersion struct {
	Migrations []int64 `json:"migrations"`
}

func NewSchemaVersion() SchemaVersion {
	sv := SchemaVersion{}
	for _, m := range migrations {
		sv.Migrations = append(sv.Migrations, m.Version)
	}
	slices.Sort(sv.Migrations)
	return sv
}

type DBMigrator struct {
	db *gorm.DB
}

func NewDBMigrator(db *gorm.DB) *DBMigrator {
	return &DBMigrator{
		db: db,
	}
}

func (d *DBMigrator) initialize() error {
	db := d.db
	if err := db.AutoMigrate(&DatabaseMigration{}); err != nil {
		return fmt.Errorf("failed to create 'database_migration' table: %w", err)
	}
	var count int64
	if err := db.Model(&DatabaseMigration{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to query migration records: %w", err)
	}
	if count == 0 {
		initialRecord := DatabaseMigration{Version: 0}
		if err := db.Create(&initialRecord).Error; err != nil {
			return fmt.Errorf("failed to insert initial migration record: %w", err)
		}
	}
	return nil
}

func (d *DBMigrator) CurrentVersion(ctx context.Context) (int64, error) {
	var m DatabaseMigration
	if err := d.db.WithContext(ctx).Order("id").First(&m).Error; err != nil {
		return 0, err
	}
	return m.Version, nil
}

func (d *DBMigrator) Migrate() error {
	if err := d.initialize(); err != nil {
		return err
	}
	versions := NewSchemaVersion().Migrations
	byVersion := make(map[int64]Migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}
	return d.db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		var current DatabaseMigration
		if err := tx.Order("id").First(&current).Error; err != nil {
			return fmt.Errorf("no row found in database_migration: %w", err)
		}
		updated := false
		for _, version := range versions {
			if current.Version >= version {
				continue
			}
			if err := byVersion[version].Up(tx); err != nil {
				return fmt.Errorf("migration %d failed: %w", version, err)
			}
			current.Version = version
			updated = true
		}
		if !updated {
			return nil
		}
		logger.GetLogger().Infof("preference store migrated to version %d", current.Version)
		return tx.Save(&current).Error
	})
}
