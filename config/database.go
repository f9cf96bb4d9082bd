package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB abre la conexión según DB_DRIVER (mysql por defecto; postgres y
// sqlite para otros despliegues y desarrollo local).
func InitDB() (*gorm.DB, error) {
	driver := GetEnv("DB_DRIVER", "mysql")

	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			GetEnv("DB_USER", "root"),
			GetEnv("DB_PASSWORD", ""),
			GetEnv("DB_HOST", "127.0.0.1"),
			GetEnv("DB_PORT", "3306"),
			GetEnv("DB_NAME", "reservasRest"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})

	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			GetEnv("DB_HOST", "localhost"),
			GetEnv("DB_USER", "postgres"),
			GetEnv("DB_PASSWORD", "password"),
			GetEnv("DB_NAME", "reservasRest"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_SSLMODE", "disable"),
			GetEnv("DB_TIMEZONE", "UTC"),
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})

	case "sqlite":
		return gorm.Open(sqlite.Open(GetEnv("DB_PATH", "reservasRest.db")), &gorm.Config{})

	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %s", driver)
	}
}
