package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/damoang/angple-comms/internal/config"
	"github.com/damoang/angple-comms/internal/domain"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Migration runner: creates the angple_* tables used by the screening service.
// Usage: go run ./cmd/migrate
func main() {
	_ = config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	configPath := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	start := time.Now()
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.MemberMute{},
		&domain.MemberIgnore{},
		&domain.AllowedPMUser{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Migration completed in %s", time.Since(start))
}
