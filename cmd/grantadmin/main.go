// grantadmin promotes an existing account to the admin role. It is a
// one-off bootstrap tool, not part of the running service:
//
//	grantadmin -email shop-owner@example.com
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dant324/bare-and-beautiful/internal/config"
	"github.com/Dant324/bare-and-beautiful/internal/user"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()
	if *email == "" {
		log.Fatal("usage: grantadmin -email <address>")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	repo := openRepository(cfg)
	service := user.NewService(repo)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	u, err := service.Promote(ctx, *email)
	if err != nil {
		log.Fatalf("promote %s: %v", *email, err)
	}
	log.Printf("%s is now an admin (user id %s)", u.Email, u.ID)
}

func openRepository(cfg config.Config) user.Repository {
	switch cfg.StoreDriver {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		return user.NewMongoRepository(client.Database(cfg.MongoDB))
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is not set")
		}
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		return user.NewPostgresRepository(db)
	default:
		log.Fatalf("grantadmin needs a persistent store, got driver %q", cfg.StoreDriver)
		return nil
	}
}
