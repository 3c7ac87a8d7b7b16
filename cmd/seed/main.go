// cmd/seed/main.go
// Inserts dummy dating profiles into the configured profile store

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/joho/godotenv"

	"github.com/imadgeboyega/nomad-dating/internal/common/utils"
	"github.com/imadgeboyega/nomad-dating/internal/config"
	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

var (
	interestPool   = []string{"hiking", "cooking", "traveling", "gaming", "reading", "surfing", "music", "art", "running", "coffee", "chess", "dancing"}
	hobbyPool      = []string{"photography", "yoga", "painting", "climbing", "gardening", "baking", "cycling", "writing"}
	orientations   = []string{"Straight", "Gay", "Bi", "Anyone"}
	foods          = []string{"Sushi", "Pizza", "Tacos", "Ramen", "Curry", "Pasta", "Falafel"}
	goals          = []string{"Serious", "Casual", "Friendship", "Not sure yet"}
	educationLevel = []string{"High school", "Bachelor's", "Master's", "PhD", "Self-taught"}
	movies         = []string{"Inception", "Arrival", "Amelie", "Spirited Away", "The Matrix", "Parasite"}
)

func main() {
	count := flag.Int("count", 20, "number of profiles to create")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	printTokens := flag.Bool("tokens", false, "print an access token for each profile")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}

	if *printTokens && !tokensAllowed(cfg) {
		log.Fatal("❌ -tokens is only available when ENVIRONMENT=development")
	}

	repo, closeStore, err := profile.OpenStore(cfg)
	if err != nil {
		log.Fatal("❌ Failed to open profile store:", err)
	}
	defer closeStore()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fake := faker.NewWithSeed(rand.NewSource(*seed))

	ctx := context.Background()
	created := 0
	for _, p := range buildProfiles(fake, *count) {
		if err := repo.Create(ctx, p); err != nil {
			if errors.Is(err, profile.ErrProfileExists) {
				log.Printf("⚠️  Skipping %s: already exists", p.UID)
				continue
			}
			log.Fatalf("❌ Failed to create %s: %v", p.UID, err)
		}
		created++
		log.Printf("✅ Created %s (%s)", p.DisplayName(), p.UID)

		if *printTokens {
			token, err := accessToken(p.UID, cfg.JWTSecret)
			if err != nil {
				log.Fatalf("❌ Failed to sign token for %s: %v", p.UID, err)
			}
			fmt.Printf("%s\t%s\n", p.UID, token)
		}
	}

	log.Printf("🌱 Seeded %d profiles (seed %d)", created, *seed)
}

// buildProfiles generates complete, dating-enabled profiles covering every
// default catalog field.
func buildProfiles(fake faker.Faker, n int) []*profile.Profile {
	profiles := make([]*profile.Profile, 0, n)
	for i := 0; i < n; i++ {
		gender := fake.RandomStringElement([]string{"female", "male", "non-binary"})

		var name string
		switch gender {
		case "female":
			name = fake.Person().FirstNameFemale()
		case "male":
			name = fake.Person().FirstNameMale()
		default:
			name = fake.Person().FirstName()
		}

		city := fake.Address().City()
		orientation := fake.RandomStringElement(orientations)
		age := fake.IntBetween(18, 65)

		profiles = append(profiles, &profile.Profile{
			UID:          fake.UUID().V4(),
			Name:         &name,
			EnableDating: true,
			Age:          &age,
			Gender:       &gender,
			City:         &city,
			Orientation:  &orientation,
			Interests:    pick(fake, interestPool, 3),
			Hobbies:      pick(fake, hobbyPool, 2),
			Attributes: profile.Attributes{
				"favoriteFood":      fake.RandomStringElement(foods),
				"funFact":           fake.Lorem().Sentence(6),
				"relationshipGoals": fake.RandomStringElement(goals),
				"occupation":        fake.Company().JobTitle(),
				"education":         fake.RandomStringElement(educationLevel),
				"favoriteMovie":     fake.RandomStringElement(movies),
			},
		})
	}
	return profiles
}

// pick returns n distinct entries from pool
func pick(fake faker.Faker, pool []string, n int) []string {
	n = min(n, len(pool))
	shuffled := append([]string(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := fake.IntBetween(0, i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}

// tokensAllowed reports whether dev tokens may be printed
func tokensAllowed(cfg *config.Config) bool {
	return cfg.IsDevelopment()
}

func accessToken(uid, secret string) (string, error) {
	now := time.Now()
	return utils.GenerateJWT(&utils.JWTClaims{
		UserID:    uid,
		Type:      utils.TokenTypeAccess,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(30 * 24 * time.Hour).Unix(),
		Issuer:    "seed",
	}, secret)
}
