package database

import (
	"fmt"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// IDatabase is the database abstraction handed to repos.
type IDatabase interface {
	// Database returns the underlying *gorm.DB
	Database() *gorm.DB
}

// GormDB wraps a *gorm.DB behind IDatabase.
type GormDB struct {
	db *gorm.DB
}

func NewGormDB(db *gorm.DB) IDatabase {
	return &GormDB{db: db}
}

func (g *GormDB) Database() *gorm.DB {
	return g.db
}

type Database struct {
	Type         string
	Host         string
	Port         string
	User         string
	Password     string
	DB           string
	OutPut       bool `mapstructure:"output"`
	MaxOpenConns int  `mapstructure:"maxOpenConns"`
	MaxIdleConns int  `mapstructure:"maxIdleConns"`
	MaxLifetime  int  `mapstructure:"maxLifeTime"`
	MaxIdleTime  int  `mapstructure:"maxIdleTime"`
}

const (
	defaultTablePrefix = "t_"
	defaultSlowSQL     = time.Second
)

// NewDatabase opens a gorm MySQL connection with the shared naming strategy.
func NewDatabase(cfg Database) (*gorm.DB, error) {

	if cfg.Type != "" && cfg.Type != "mysql" {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DB)

	logMode := logger.Default.LogMode(logger.Silent)
	if cfg.OutPut {
		logMode = logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             defaultSlowSQL,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		})
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   defaultTablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected")

	return db, nil
}

// gormLogWriter routes gorm SQL logging into the app logger.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Infof(format, args...)
}
