package db

import (
	"fmt"
	"log"
	"time"

	"encuentros/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

var ORM *gorm.DB

func dsnFromConfig(driver string, dbConf config.DBConfig) string {
	if driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			dbConf.User, dbConf.Password, dbConf.Host, dbConf.Port, dbConf.DBName)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.DBName,
	)
}

func dialectorFor(driver string, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(level)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open connects to the configured database and registers read replicas, if any.
func Open(conf *config.ConfigSchema) (*gorm.DB, error) {
	driver := conf.Databases.Driver
	if driver == "sqlite" {
		return OpenSQLite(conf.Databases.SQLitePath)
	}

	dialector, err := dialectorFor(driver, dsnFromConfig(driver, conf.Databases.Master))
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, gormConfig(conf.Logs.Level))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", driver, err)
	}

	replicas := make([]gorm.Dialector, 0, len(conf.Databases.Replicas))
	for _, r := range conf.Databases.Replicas {
		d, err := dialectorFor(driver, dsnFromConfig(driver, r))
		if err != nil {
			return nil, err
		}
		replicas = append(replicas, d)
	}
	if len(replicas) > 0 {
		err = conn.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register replicas: %w", err)
		}
		log.Printf("Registered %d read replica(s)", len(replicas))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(conf.Databases.MaxOpenConns)
	sqlDB.SetMaxIdleConns(conf.Databases.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return conn, nil
}

// OpenSQLite opens a sqlite database with a single connection, so writers are
// serialized and ":memory:" databases survive between calls.
func OpenSQLite(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path), gormConfig("error"))
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite %s: %w", path, err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

func ConnectDB() (err error) {
	if ORM != nil {
		log.Println("ORM is already initialized")
		return nil
	}
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}

	conn, err := Open(config.AppConfig)
	if err != nil {
		return err
	}
	if err = Migrate(conn); err != nil {
		return err
	}

	ORM = conn
	log.Printf("Connected to %s database", config.AppConfig.Databases.Driver)
	return nil
}

func hasReplicas(conn *gorm.DB) bool {
	_, ok := conn.Config.Plugins[(&dbresolver.DBResolver{}).Name()]
	return ok
}
