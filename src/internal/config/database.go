package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/VectorBits/abi2sol/src/internal/logger"
)

// Database wraps the gorm handle together with the driver that opened it.
type Database struct {
	DB     *gorm.DB
	Driver string
}

func (c *DatabaseConfig) PostgresDSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, port, c.User, c.Password, c.Name, sslmode)
}

func NewPostgresDB(cfg *DatabaseConfig) (*Database, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("postgres host is not configured")
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &Database{DB: db, Driver: "postgres"}, nil
}

// OpenDatabase 打开配置的数据库；postgres 连接失败时回退到 SQLite
func OpenDatabase(cfg DatabaseConfig) (*Database, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultSQLitePath
	}

	if cfg.Driver == "postgres" {
		db, err := NewPostgresDB(&cfg)
		if err == nil {
			logger.Debug("PostgreSQL connection successful")
			return db, nil
		}
		logger.Warn("PostgreSQL connection failed: %v", err)
		logger.Warn("Falling back to SQLite at %s", path)
	}

	return NewSQLiteDB(path)
}

func (d *Database) AutoMigrate(models ...interface{}) error {
	if err := d.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate (%s): %w", d.Driver, err)
	}
	return nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
