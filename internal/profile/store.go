package profile

import (
	"context"
	"log"
	"time"

	"github.com/imadgeboyega/nomad-dating/internal/common/database"
	"github.com/imadgeboyega/nomad-dating/internal/config"
)

// OpenStore connects the configured backend and, for Postgres, applies the
// schema. The returned func releases the connection.
func OpenStore(cfg *config.Config) (Repository, func(), error) {
	switch cfg.ProfileStore {
	case "mongo":
		client, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("⚠️  MongoDB disconnect failed: %v", err)
			}
		}
		return NewMongoRepository(client.Database(cfg.MongoDatabase)), closeFn, nil

	default:
		db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		log.Println("   - Running database migrations...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := database.RunMigrations(ctx, db, Migrations); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("   ✅ Database migrations completed")

		return NewPostgresRepository(db), func() { db.Close() }, nil
	}
}
