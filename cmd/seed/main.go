package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-community-events/config"
	"github.com/oksasatya/go-community-events/pkg/helpers"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	UserType string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.JWTIssuer)

	users := []seedUser{
		{Name: "Admin", Email: "admin@example.com", Password: "password123", UserType: "admin"},
		{Name: "Demo User", Email: "demo@example.com", Password: "password123", UserType: "regular"},
	}
	ids := make(map[string]string, len(users))
	for _, u := range users {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (name, email, password, user_type, is_verified)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, user_type = EXCLUDED.user_type, updated_at = now()
			RETURNING id
		`, u.Name, u.Email, hash, u.UserType).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		ids[u.UserType] = id

		token, exp, err := jwt.GenerateAccessToken(id)
		if err != nil {
			log.Fatalf("failed to sign token: %v", err)
		}
		fmt.Printf("seeded %s user: id=%s email=%s password=%s\n  token (expires %s): %s\n",
			u.UserType, id, u.Email, u.Password, exp.Format(time.RFC3339), token)
	}

	start := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	var eventID string
	err = db.QueryRow(`
		INSERT INTO events (creator_id, title, description, location, start_date, end_date, age_lower, age_upper, capacity, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, ids["admin"], "Community Park Cleanup", "Bring gloves, we supply the bags.", "Riverside Park",
		start, start.Add(3*time.Hour), 0, 99, 25, []string{"outdoors", "volunteering"}).Scan(&eventID)
	if err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	fmt.Printf("seeded event: id=%s\n", eventID)
}
