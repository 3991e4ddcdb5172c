package configs

import (
	"log"

	"moi-backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// First-run admin account from env.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Moi Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// Starter menu so a fresh install has something to browse.
func SeedMenu() error {
	db := DB()

	var count int64
	db.Model(&entity.MenuItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		{Name: "Moi Bowl", Description: "Lax, ris, mango, sjögräs", Price: 13500, Category: "Pokébowl"},
		{Name: "Crispy Chicken Bowl", Description: "Friterad kyckling, ris, picklad rödlök", Price: 12900, Category: "Pokébowl"},
		{Name: "California Roll 8 bitar", Description: "Surimi, avokado, gurka", Price: 10900, Category: "Sushi"},
		{Name: "Lax Nigiri 2 bitar", Description: "Färsk lax på ris", Price: 3500, Category: "Sushi"},
		{Name: "Ramlösa", Price: 2500, Category: "Dryck"},
	}
	return db.Create(&items).Error
}
