package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/config"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/database"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/events"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/router"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: no se encontró .env: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if config.GetEnv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Fallo al sembrar datos iniciales: %v", err)
	}

	// Bus de eventos de dominio; con AMQP_URL los eventos salen también a RabbitMQ
	bus := events.NewBus()
	bus.Subscribe(func(msg events.Message) {
		utils.InfoLogger.Printf("evento %s", msg.Event)
	})
	if url := os.Getenv("AMQP_URL"); url != "" {
		publisher, err := events.NewAMQPPublisher(url)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ no disponible, eventos solo en proceso: %v", err)
		} else {
			defer publisher.Close()
			bus.Subscribe(publisher.Handle)
		}
	}

	go utils.CleanupBlacklist(time.Hour)

	r := router.SetupRouter(db, bus)

	port := config.GetEnv("PORT", "8080")
	utils.InfoLogger.Printf("Escuchando en el puerto %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Mesa{},
		&models.Reserva{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Fallo en AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completado.")
}
