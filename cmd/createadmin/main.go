// Command createadmin seeds an admin account from ADMIN_NAME, ADMIN_EMAIL and
// ADMIN_PASSWORD. Running it again for the same email changes nothing.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Rayup0124/SCM-Career-Bridge/config"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/repository"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/logger"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	logger.Init(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	adminUC := usecase.NewAdminUsecase(usecase.AdminDeps{
		Students:     repos.Students,
		Companies:    repos.Companies,
		Admins:       repos.Admins,
		Internships:  repos.Internships,
		Applications: repos.Applications,
		Hasher:       security.NewPasswordHasher(cfg.BcryptCost),
	})

	admin, created, err := adminUC.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	if created {
		fmt.Printf("Admin created: %s (%s)\n", admin.Email, admin.ID)
		return
	}
	fmt.Printf("Admin already exists: %s (%s)\n", admin.Email, admin.ID)
}
