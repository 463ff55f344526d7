package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"basix/config"
	"basix/logger"
	"basix/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func init() {
	// timestamps sempre em UTC: o filtro de mês compara em UTC
	gorm.NowFunc = func() time.Time { return time.Now().UTC() }
}

// Connect abre conexão com DB (sqlite3 por padrão) e roda o automigrate quando configurado.
func Connect(conf config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent(logger.ComponentStorage)

	var (
		db  *gorm.DB
		err error
	)

	switch strings.ToLower(conf.Database) {
	case "postgres", "postgresql":
		log.Info("utilizando conexão com o postgresql", "host", conf.DbHost, "db", conf.DbName)
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=disable"
		db, err = gorm.Open("postgres", path)
	default:
		log.Info("utilizando conexão com o sqlite3", "path", conf.DbPath)
		if conf.DbPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(conf.DbPath), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err = gorm.Open("sqlite3", conf.DbPath)
		if err == nil {
			// sqlite não lida bem com escritas concorrentes
			db.DB().SetMaxOpenConns(1)
		}
	}
	if err != nil {
		log.Error("erro ao conectar no banco", logger.FieldError, err)
		return nil, err
	}

	db.SetLogger(logger.GormAdapter{L: log})
	db.LogMode(conf.DbLog)

	if conf.AutoMigrate {
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("automigrate concluído")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.BankAccount{},
		&models.Card{},
		&models.Transaction{},
		&models.Profile{},
		&models.Billing{},
	).Error
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// OpenMemory abre um sqlite em memória já migrado. Usado nos testes.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
