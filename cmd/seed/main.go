// seed inserts a demo user, a resume, and a batch of applications into
// the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/infrastructure/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password-1"
)

type appSpec struct {
	company  string
	position string
	status   string
	jobType  string
	daysAgo  int
}

var apps = []appSpec{
	// Fresh applications, still in the pipeline
	{"Acme Corp", "Backend Engineer", "applied", "full-time", 2},
	{"Globex", "Platform Engineer", "applied", "full-time", 5},
	{"Initech", "Site Reliability Engineer", "interviewing", "full-time", 9},
	{"Umbrella Labs", "Go Developer", "interviewing", "contract", 12},

	// Stale: status still 'applied' and older than the default
	// reminder cutoff, so the daily pass will pick these up
	{"Hooli", "Software Engineer", "applied", "full-time", 21},
	{"Pied Piper", "Distributed Systems Engineer", "applied", "full-time", 30},

	// Terminal states
	{"Stark Industries", "Senior Backend Engineer", "offer", "full-time", 40},
	{"Wayne Enterprises", "API Engineer", "rejected", "full-time", 45},
	{"Aperture Science", "DevOps Engineer", "withdrawn", "part-time", 50},
}

const seedResume = `Experienced backend engineer. Skills: Go, PostgreSQL, Redis,
Docker, Kubernetes, AWS, REST APIs, microservices, CI/CD.
Strong communication and leadership, agile team experience.`

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, 'Sam', 'Seeder')
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert applications, skip ones that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, spec := range apps {
		appliedAt := time.Now().AddDate(0, 0, -spec.daysAgo)
		tag, err := pool.Exec(ctx, `
			INSERT INTO applications (
				user_id, company, position, status, job_type,
				description, requirements, applied_at
			)
			SELECT $1, $2, $3, $4, $5,
				'Build and operate backend services in Go.',
				'Required: Go, PostgreSQL, Docker, Kubernetes. Nice to have: Redis, AWS, leadership.',
				$6
			WHERE NOT EXISTS (
				SELECT 1 FROM applications
				WHERE user_id = $1 AND company = $2 AND position = $3
			)`,
			userID, spec.company, spec.position, spec.status, spec.jobType, appliedAt,
		)
		if err != nil {
			log.Fatalf("insert application %s/%s: %v", spec.company, spec.position, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	var resumeID string
	err = pool.QueryRow(ctx, `
		INSERT INTO resumes (user_id, title, format, content)
		SELECT $1, 'Seed resume', 'text', $2
		WHERE NOT EXISTS (
			SELECT 1 FROM resumes WHERE user_id = $1 AND title = 'Seed resume'
		)
		RETURNING id`,
		userID, seedResume,
	).Scan(&resumeID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("insert resume: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Apps:     %d created (skipped %d already existing)\n", inserted, skipped)
	if resumeID != "" {
		fmt.Printf("  Resume:   %s\n", resumeID)
	}
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1, log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2, list applications:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/applications -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3, score the seed resume against an application:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/match \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"resume_id\":\"RESUME_ID\",\"application_id\":\"APP_ID\"}'")
}
