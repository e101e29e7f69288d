package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

// Seeds a fresh database with a default admin account, the showing
// configuration, weekday evening showing windows and a starter add-on
// catalog. Safe to re-run: existing rows are left alone.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	adminRepo := repository.NewAdminRepository(db)
	showingRepo := repository.NewShowingRepository(db)
	addOnRepo := repository.NewAddOnRepository(db)

	// ================== ADMIN ==================
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@venuebook.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	if _, err := adminRepo.GetByEmail(ctx, email); err == repository.ErrNotFound {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		admin := domain.AdminUser{
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := adminRepo.Create(ctx, &admin); err != nil {
			log.Fatal("admin create failed:", err)
		}
		log.Printf("Admin created: %s / %s", email, password)
	} else {
		log.Printf("Admin already exists: %s", email)
	}

	// ================== SHOWING CONFIG ==================
	showCfg := domain.DefaultShowingConfig()
	if err := showingRepo.SaveConfig(ctx, &showCfg); err != nil {
		log.Fatal("showing config save failed:", err)
	}
	log.Printf("Showing config: %d min slots, max %d per window",
		showCfg.DefaultDurationMinutes, showCfg.MaxSlotsPerWindow)

	// ================== SHOWING WINDOWS ==================
	log.Println("Creating showing windows...")
	windows := []domain.ShowingWindow{
		{DayOfWeek: 1, StartTime: domain.Clock{Hour: 17}, EndTime: domain.Clock{Hour: 19}, Enabled: true},
		{DayOfWeek: 2, StartTime: domain.Clock{Hour: 17}, EndTime: domain.Clock{Hour: 19}, Enabled: true},
		{DayOfWeek: 3, StartTime: domain.Clock{Hour: 17}, EndTime: domain.Clock{Hour: 19}, Enabled: true},
		{DayOfWeek: 4, StartTime: domain.Clock{Hour: 17}, EndTime: domain.Clock{Hour: 19}, Enabled: true},
		{DayOfWeek: 6, StartTime: domain.Clock{Hour: 10}, EndTime: domain.Clock{Hour: 12}, Enabled: true},
	}
	for _, w := range windows {
		w := w
		if err := showingRepo.CreateWindow(ctx, &w); err != nil {
			if err == repository.ErrUniqueViolation {
				continue
			}
			log.Fatal("window create failed:", err)
		}
	}

	// ================== ADD-ON CATALOG ==================
	existing, err := addOnRepo.List(ctx, false)
	if err != nil {
		log.Fatal("add-on list failed:", err)
	}
	if len(existing) == 0 {
		log.Println("Creating add-ons...")
		addons := []domain.AddOn{
			{Name: "Round table (seats 8)", PriceCents: 1500, Active: true, SortOrder: 1},
			{Name: "Folding chair", PriceCents: 250, Active: true, SortOrder: 2},
			{Name: "Linen package", PriceCents: 1200, Active: true, SortOrder: 3},
			{Name: "PA system with two mics", PriceCents: 7500, Active: true, SortOrder: 4},
			{Name: "Projector and screen", PriceCents: 5000, Active: true, SortOrder: 5},
		}
		for _, a := range addons {
			a := a
			if err := addOnRepo.Create(ctx, &a); err != nil {
				log.Fatal("add-on create failed:", err)
			}
		}
	} else {
		log.Printf("Add-on catalog already has %d items, skipping", len(existing))
	}

	log.Println("Seed complete")
}
