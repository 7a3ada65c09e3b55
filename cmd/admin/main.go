// Herramienta de administración por línea de comandos. Las cuentas de
// revisor y administrador solo se crean desde aquí: el registro público de la
// API siempre produce demandantes.
package main

import (
	"fmt"
	"log"
	"os"

	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "crear-usuario":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin crear-usuario <nombre> <email> <password> <rol>")
			os.Exit(1)
		}
		if err := crearUsuario(storageSvc, os.Args[2], os.Args[3], os.Args[4], os.Args[5]); err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s has been created.\n", os.Args[3])
	case "desactivar":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin desactivar <user_id>")
			os.Exit(1)
		}
		if err := cambiarActivo(storageSvc, os.Args[2], false); err != nil {
			log.Fatalf("Error deactivating user: %v", err)
		}
		fmt.Printf("User %s has been deactivated.\n", os.Args[2])
	case "activar":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin activar <user_id>")
			os.Exit(1)
		}
		if err := cambiarActivo(storageSvc, os.Args[2], true); err != nil {
			log.Fatalf("Error activating user: %v", err)
		}
		fmt.Printf("User %s has been activated.\n", os.Args[2])
	case "prioridad":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin prioridad <denuncia_id> <baja|media|alta|critica>")
			os.Exit(1)
		}
		if !config.PrioridadesValidas[os.Args[3]] {
			fmt.Println("Invalid prioridad.")
			os.Exit(1)
		}
		if err := storageSvc.ActualizarPrioridad(os.Args[2], models.Prioridad(os.Args[3])); err != nil {
			log.Fatalf("Error updating prioridad: %v", err)
		}
		fmt.Printf("Denuncia %s prioridad set to %s.\n", os.Args[2], os.Args[3])
	case "seed-categorias":
		if err := seedCategorias(db); err != nil {
			log.Fatalf("Error seeding categorias: %v", err)
		}
		fmt.Println("Categorias seeded.")
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func crearUsuario(s storage.Storage, nombre, email, password, rol string) error {
	switch models.Rol(rol) {
	case models.RolAdmin, models.RolRevisor, models.RolDemandante:
	default:
		return fmt.Errorf("rol desconocido: %q", rol)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.CrearUsuario(&models.Usuario{
		Nombre:   nombre,
		Email:    email,
		Password: string(hash),
		Rol:      models.Rol(rol),
		Activo:   true,
	})
}

func cambiarActivo(s storage.Storage, userID string, activo bool) error {
	u, err := s.GetUsuarioPorID(userID)
	if err != nil {
		return err
	}
	u.Activo = activo
	return s.ActualizarUsuario(u)
}

func seedCategorias(db *gorm.DB) error {
	for _, nombre := range config.CategoriasIniciales {
		err := db.Where(models.Categoria{Nombre: nombre}).
			FirstOrCreate(&models.Categoria{Nombre: nombre}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
