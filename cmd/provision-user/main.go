package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"conference-portal-api/config"
	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/services"
)

func main() {
	email := flag.String("email", "", "login email of the new account")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password (at least 8 characters)")
	role := flag.String("role", string(models.RoleUser), "ADMIN or USER")
	flag.Parse()

	log.Println("Provisioning portal account...")

	settings, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := config.InitDB(settings)
	if err != nil {
		log.Fatal(err)
	}
	gw := gateway.NewGormGateway(db, settings.GatewayTimeout)
	if settings.AutoMigrate {
		if err := gw.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema: ", err)
		}
	}

	auth := services.NewAuthService(services.Deps{Gateway: gw})
	user, err := auth.CreateUser(context.Background(), services.NewUserInput{
		Email:       *email,
		DisplayName: *name,
		Password:    *password,
		Role:        models.Role(strings.ToUpper(strings.TrimSpace(*role))),
	})
	if err != nil {
		log.Fatalf("Failed to provision %s: %v", *email, err)
	}

	log.Printf("Created %s account %s (id=%s)", user.Role, user.Email, user.ID)
}
