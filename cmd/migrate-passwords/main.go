// Migration script to hash existing plaintext passwords
// cmd/migrate-passwords/main.go
package main

import (
	"context"
	"log"
	"time"

	"conference-portal-api/config"
	"conference-portal-api/gateway"
	"conference-portal-api/utils"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := config.InitDB(settings)
	if err != nil {
		log.Fatal(err)
	}
	gw := gateway.NewGormGateway(db, settings.GatewayTimeout)

	ctx := context.Background()
	users, err := gw.Users().List(ctx, gateway.ListOptions{})
	if err != nil {
		log.Fatal("Failed to fetch users: ", err)
	}

	migrated := 0
	for _, user := range users {
		if utils.IsBcryptHash(user.Password) {
			log.Printf("User %s already has hashed password, skipping\n", user.Email)
			continue
		}

		hashedPassword, err := utils.HashPassword(user.Password)
		if err != nil {
			log.Printf("Failed to hash password for user %s: %v\n", user.Email, err)
			continue
		}

		err = gw.Users().Update(ctx, user.ID, gateway.Fields{
			"password":   hashedPassword,
			"updated_at": time.Now().UTC(),
		}, gateway.IfVersion(user.Version))
		if err != nil {
			log.Printf("Failed to update password for user %s: %v\n", user.Email, err)
			continue
		}

		migrated++
		log.Printf("Successfully updated password for user %s\n", user.Email)
	}

	log.Printf("Password migration completed! (%d of %d users updated)", migrated, len(users))
}
