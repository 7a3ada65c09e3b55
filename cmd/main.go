package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"justiciaverde/backend/internal/api/handler"
	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/denuncia"
	"justiciaverde/backend/internal/estadisticas"
	"justiciaverde/backend/internal/livefeed"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"
	"justiciaverde/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// TranslateError es obligatorio: el toggle de likes distingue la clave
	// duplicada vía gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migraciones
	err = db.AutoMigrate(
		&models.Usuario{},
		&models.Categoria{},
		&models.Denuncia{},
		&models.Seguimiento{},
		&models.Asignacion{},
		&models.Reaccion{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Índice único parcial: a lo sumo una asignación activa por denuncia.
	// AutoMigrate no sabe expresar índices parciales, así que va a mano.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_asignacion_activa
		ON asignaciones (denuncia_id) WHERE fecha_finalizacion IS NULL`).Error
	if err != nil {
		log.Fatalf("Failed to create partial index: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

// seedCategorias siembra el catálogo fijo de categorías. Idempotente.
func seedCategorias(db *gorm.DB) {
	for _, nombre := range config.CategoriasIniciales {
		err := db.Where(models.Categoria{Nombre: nombre}).
			FirstOrCreate(&models.Categoria{Nombre: nombre}).Error
		if err != nil {
			log.Fatalf("Failed to seed categoria %q: %v", nombre, err)
		}
	}
}

func main() {
	log.Println("Starting Justicia Verde Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET no está configurado!")
	}

	// 1. Dependencias
	db, rdb := setupDependencies()
	seedCategorias(db)
	s := storage.NewStorageService(db, rdb)

	// 2. Servicios y hub del feed
	denunciaSvc := denuncia.NewService(s)
	estadisticasSvc := estadisticas.NewService(s)
	hub := livefeed.NewManager(s)

	// Notificador de Telegram: opcional, el servidor arranca sin él.
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken != "" && chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_CHAT_ID inválido: %v", err)
		}
		notifier, err := telegram.NewNotifier(botToken, chatID)
		if err != nil {
			log.Printf("WARN: Telegram notifier disabled: %v", err)
		} else {
			denunciaSvc.Notificador = notifier
		}
	}

	// 3. Goroutine principal del feed en vivo
	go hub.Run()

	// 4. Gin y rutas
	r := gin.Default()
	h := handler.NewHandler(denunciaSvc, estadisticasSvc, s, hub, []byte(jwtSecret))

	api := r.Group("/api")
	{
		api.POST("/auth/registro", h.Registro)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/perfil", h.AuthRequired(), h.Perfil)

		api.GET("/denuncias", h.ListarDenuncias)
		api.POST("/denuncias", h.AuthOptional(), h.CrearDenuncia)
		api.GET("/denuncias/disponibles", h.AuthRequired(), h.ListarDisponibles)
		api.GET("/denuncias/mias", h.AuthRequired(), h.ListarMias)
		api.GET("/denuncias/asignadas", h.AuthRequired(), h.ListarAsignadas)
		api.GET("/denuncias/:id", h.GetDenuncia)
		api.PATCH("/denuncias/:id/estado", h.AuthRequired(), h.CambiarEstado)
		api.POST("/denuncias/:id/asignar", h.AuthRequired(), h.Asignar)
		api.POST("/denuncias/:id/like", h.AuthRequired(), h.ToggleLike)
		api.POST("/denuncias/:id/compartir", h.RegistrarCompartido)
		api.PATCH("/denuncias/:id/prioridad", h.AuthRequired(), h.CambiarPrioridad)
		api.PATCH("/denuncias/:id/visibilidad", h.AuthRequired(), h.CambiarVisibilidad)
		api.DELETE("/denuncias/:id", h.AuthRequired(), h.ArchivarDenuncia)

		api.GET("/seguimientos", h.ListarSeguimientos)
		api.POST("/seguimientos", h.AuthRequired(), h.CrearSeguimiento)

		api.GET("/estadisticas", h.GetEstadisticas)
	}

	r.GET("/ws/denuncias", h.ServeWebSocket)

	// 5. Servidor HTTP
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
