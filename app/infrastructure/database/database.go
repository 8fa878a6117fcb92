package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// NewDB opens the local preference store.
func NewDB() (*gorm.DB, error) {
	db, err := Open(environment_variables.EnvironmentVariables.PREFERENCES_DB_PATH)
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "5c16fb53-d98c-4fc6-8bb4-9abd3c0b9e88").
			Errorf("unable to open preference store: %v", err)
		return nil, err
	}
	DB = db
	return DB, nil
}

// Open opens the sqlite file at path, migrates every registered schema and
// applies pending versioned migrations.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			logger.GetLogger().
				WithField("error_code", "75333e43-8157-4f0a-8e34-aa34e6e7c285").
				Errorf("failed to auto migrate schema: %T, error: %v", model, err)
			return nil, err
		}
	}
	if err := NewDBMigrator(db).Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}
