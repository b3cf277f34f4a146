package database

import (
	"fmt"
	"log"
	"os"

	"pythonista/config"
	"pythonista/models"
	courseModels "pythonista/models/course"
	"pythonista/progress"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db    *gorm.DB
	Store *GormStore
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, migrates it and seeds the catalog.
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		log.Fatalf("[DB] Failed to connect to %s: %v", cfg.DBDriver, err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[DB] Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	if err := RunMigrations(db); err != nil {
		log.Fatalf("[DB] Migration failed: %v", err)
	}
	if cfg.SeedCatalog {
		if err := SeedCatalog(db); err != nil {
			log.Fatalf("[DB] Seeding catalog failed: %v", err)
		}
	}

	Use(db)
	log.Printf("[DB] Connected to %s", cfg.DBDriver)
}

// Use installs db as the global database instance.
func Use(db *gorm.DB) {
	Database = DbInstance{Db: db, Store: NewGormStore(db)}
}

// DSN builds the connection string of the configured driver.
func DSN(cfg *config.Config) string {
	switch cfg.DBDriver {
	case "postgres":
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, port)
	case "mysql":
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, port, cfg.DBName)
	default:
		return cfg.DBName + ".db"
	}
}

// Open connects with the named driver. Unique violations are translated to
// gorm.ErrDuplicatedKey.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("[DB] Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&courseModels.Chapter{},
		&courseModels.Test{},
		&courseModels.TestQuestion{},
		&courseModels.LevelQuestion{},
		&courseModels.CompletedChapter{},
		&courseModels.CompletedTest{},
		&courseModels.LevelRecord{},
	)
	if err != nil {
		return err
	}

	log.Println("[DB] Migrations completed successfully.")
	return nil
}

// CatalogChapters is the ordered chapter sequence. Each chapter has a test named
// after it with a "_test" suffix at the same position.
var CatalogChapters = []string{
	"Quickstart", "Chapter1", "Chapter2", "Chapter3", "BasicsTest",
	"Chapter4", "Chapter5", "Chapter6", "AdvancedTest",
	"Chapter7", "Chapter8", "Chapter9", "FinalTest",
}

// SeedCatalog inserts the chapter and test catalog when the tables are empty.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseModels.Chapter{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for i, name := range CatalogChapters {
				if err := tx.Create(&courseModels.Chapter{Position: i + 1, Name: name}).Error; err != nil {
					return err
				}
			}
			log.Printf("[DB] Seeded %d chapters", len(CatalogChapters))
		}

		if err := tx.Model(&courseModels.Test{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for i, name := range CatalogChapters {
				if err := tx.Create(&courseModels.Test{Position: i + 1, Name: name + progress.TestSuffix}).Error; err != nil {
					return err
				}
			}
			log.Printf("[DB] Seeded %d tests", len(CatalogChapters))
		}
		return nil
	})
}

// OpenMemory opens a migrated and seeded sqlite database that lives in memory
// under name. It backs local experiments and tests.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	if err := SeedCatalog(db); err != nil {
		return nil, err
	}
	return db, nil
}
