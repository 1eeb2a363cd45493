package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dant324/bare-and-beautiful/internal/cart"
	"github.com/Dant324/bare-and-beautiful/internal/catalog"
	"github.com/Dant324/bare-and-beautiful/internal/checkout"
	"github.com/Dant324/bare-and-beautiful/internal/config"
	"github.com/Dant324/bare-and-beautiful/internal/review"
	"github.com/Dant324/bare-and-beautiful/internal/user"
	"github.com/Dant324/bare-and-beautiful/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	catalogRepo, reviewRepo, userRepo := openRepositories(cfg)

	emailClient := checkout.NewEmailClient(cfg.EmailBaseURL, cfg.EmailServiceID, cfg.EmailPublicKey)

	catalogService := catalog.NewService(catalogRepo)
	reviewService := review.NewService(reviewRepo, catalogRepo)
	userService := user.NewService(userRepo).
		WithVerificationMail(emailClient, cfg.EmailVerifyTemplate, cfg.AppBaseURL)

	cartStore := cart.NewStore()
	wishlistStore := wishlist.NewStore()
	dispatcher := checkout.NewDispatcher(emailClient,
		cfg.EmailCustomerTemplate, cfg.EmailBusinessTemplate, cfg.WhatsAppNumber)

	catalogHandler := catalog.NewHandler(catalogService)
	reviewHandler := review.NewHandler(reviewService, userService)
	userHandler := user.NewHandler(userService)
	cartHandler := cart.NewHandler(cartStore, catalogService)
	wishlistHandler := wishlist.NewHandler(wishlistStore, catalogService)
	checkoutHandler := checkout.NewHandler(dispatcher, cartStore, userService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// public routes bypass the jwt middleware by registration order
	catalogHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", user.RequireAdmin)
	catalogHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)

	log.Printf("starting server on %s (store driver: %s)", cfg.Addr, cfg.StoreDriver)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func openRepositories(cfg config.Config) (catalog.Repository, review.Repository, user.Repository) {
	switch cfg.StoreDriver {
	case "mongo":
		db := mustOpenMongo(cfg)
		catalogRepo := catalog.NewMongoRepository(db)
		reviewRepo := review.NewMongoRepository(db)
		userRepo := user.NewMongoRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := reviewRepo.CreateIndexes(ctx); err != nil {
			log.Fatalf("review indexes: %v", err)
		}
		if err := userRepo.CreateIndexes(ctx); err != nil {
			log.Fatalf("user indexes: %v", err)
		}
		return catalogRepo, reviewRepo, userRepo

	case "postgres":
		db := mustOpenDB(cfg.DatabaseURL)
		bootstrapSchema(db)
		return catalog.NewPostgresRepository(db), review.NewPostgresRepository(db), user.NewPostgresRepository(db)

	default:
		return catalog.NewInMemoryRepository(seedProducts()),
			review.NewInMemoryRepository(nil),
			user.NewInMemoryRepository(nil)
	}
}

func mustOpenMongo(cfg config.Config) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo ping: %v", err)
	}
	return client.Database(cfg.MongoDB)
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	return db
}

func bootstrapSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			brand TEXT NOT NULL,
			price INT NOT NULL,
			original_price INT,
			category TEXT NOT NULL,
			skin_type TEXT,
			description TEXT NOT NULL DEFAULT '',
			ingredients JSONB NOT NULL DEFAULT '[]',
			benefits JSONB NOT NULL DEFAULT '[]',
			image TEXT NOT NULL DEFAULT '',
			images JSONB NOT NULL DEFAULT '[]',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			user_email TEXT NOT NULL,
			user_name TEXT NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL,
			review_date TIMESTAMPTZ NOT NULL,
			UNIQUE (product_id, user_email)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'customer',
			password TEXT NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			verify_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("schema bootstrap: %v", err)
		}
	}
}

func seedProducts() []catalog.Product {
	now := time.Now().UTC()
	sensitive := "Sensitive"
	dry := "Dry"
	oily := "Oily"
	cleanserOriginal := 1500

	return []catalog.Product{
		{
			Name:        "Vitamin C Glow Serum",
			Brand:       "GlowSecrets",
			Price:       1950,
			Category:    "skincare",
			SkinType:    &dry,
			Description: "What it does:\nBrightens and evens skin tone with a stabilised vitamin C complex.",
			Ingredients: []string{"Ascorbic Acid", "Hyaluronic Acid", "Aloe Vera"},
			Benefits:    []string{"Brightens", "Hydrates", "Fades dark spots"},
			Image:       "/images/vitamin-c-serum.jpg",
			Images:      []string{"/images/vitamin-c-serum.jpg", "/images/vitamin-c-serum-2.jpg"},
			Featured:    true,
			Rating:      4.5,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Name:          "Gentle Oat Cleanser",
			Brand:         "Bare and Beautiful",
			Price:         1200,
			OriginalPrice: &cleanserOriginal,
			Category:      "skincare",
			SkinType:      &sensitive,
			Description:   "How to use:\nMassage onto damp skin morning and evening, rinse with warm water.",
			Ingredients:   []string{"Colloidal Oatmeal", "Glycerin", "Chamomile"},
			Benefits:      []string{"Soothes", "Cleanses without stripping"},
			Image:         "/images/oat-cleanser.jpg",
			Images:        []string{"/images/oat-cleanser.jpg"},
			Featured:      true,
			Rating:        4.8,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Name:        "Midnight Oud Eau de Parfum",
			Brand:       "DerStore",
			Price:       3500,
			Category:    "fragrance",
			Description: "Notes:\nOud, amber and a touch of vanilla for an evening signature.",
			Image:       "/images/midnight-oud.jpg",
			Images:      []string{"/images/midnight-oud.jpg"},
			Rating:      4.2,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Name:        "Argan Repair Hair Mask",
			Brand:       "GlowSecrets",
			Price:       1600,
			Category:    "haircare",
			Description: "Deep conditioning treatment for damaged and colour-treated hair.",
			Ingredients: []string{"Argan Oil", "Shea Butter", "Keratin"},
			Benefits:    []string{"Repairs split ends", "Adds shine"},
			Image:       "/images/argan-mask.jpg",
			Images:      []string{"/images/argan-mask.jpg"},
			Rating:      4.6,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Name:        "Shea Whipped Body Butter",
			Brand:       "Bare and Beautiful",
			Price:       950,
			Category:    "bodycare",
			SkinType:    &oily,
			Description: "Rich daily moisturiser that absorbs without residue.",
			Ingredients: []string{"Shea Butter", "Coconut Oil", "Vitamin E"},
			Benefits:    []string{"All-day moisture", "Non-greasy finish"},
			Image:       "/images/shea-butter.jpg",
			Images:      []string{"/images/shea-butter.jpg"},
			Rating:      4.4,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
