package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/franciscosanchezn/gin-momo-api/internal/config"
	"github.com/franciscosanchezn/gin-momo-api/internal/database"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
)

// Creates (or reuses) an admin account and registers an OAuth2 client acting as it.
// The client secret is printed once and cannot be recovered afterwards.
func main() {
	email := flag.String("email", "admin@momo.local", "Admin account email")
	password := flag.String("password", "admin-dev-password", "Password used when the account is created")
	name := flag.String("name", "Development Client", "Client name")
	flag.Parse()

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()
	db, err := database.InitDatabase(ctx, database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	users := services.NewUserService(db)
	admin, err := users.GetUserByEmail(ctx, *email)
	switch {
	case errors.Is(err, services.ErrNotFound):
		admin = &models.User{Email: *email, Name: "Momo Admin", Role: models.RoleAdmin}
		if err := admin.SetPassword(*password); err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		if err := users.CreateUser(ctx, admin); err != nil {
			log.Fatal("Failed to create admin: ", err)
		}
		fmt.Printf("Created admin user: %s (ID: %d)\n", admin.Email, admin.ID)
	case err != nil:
		log.Fatal("Failed to look up admin: ", err)
	case !admin.IsAdmin():
		log.Fatalf("User %s exists but is not an admin", admin.Email)
	default:
		fmt.Printf("Found existing admin: %s (ID: %d)\n", admin.Email, admin.ID)
	}

	client, secret, err := services.NewClientService(db).CreateClient(ctx, admin.ID, *name, "http://localhost", "read write")
	if err != nil {
		log.Fatal("Failed to create client: ", err)
	}

	fmt.Println("Development OAuth client created")
	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", secret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://%s:%d/api/oauth/token \\\n", conf.Host, conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", secret)
}
