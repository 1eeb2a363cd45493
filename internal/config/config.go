package config

import "os"

// Config carries all runtime settings. Values come from the environment;
// cmd/app loads a .env file first so local runs need no exported vars.
type Config struct {
	Addr string

	// StoreDriver selects the storage backend: "memory", "mongo" or "postgres".
	StoreDriver string
	MongoURI    string
	MongoDB     string
	DatabaseURL string

	JWTSecret string

	// Transactional email settings (EmailJS-compatible REST endpoint).
	EmailBaseURL          string
	EmailServiceID        string
	EmailPublicKey        string
	EmailCustomerTemplate string
	EmailBusinessTemplate string
	EmailVerifyTemplate   string

	// WhatsAppNumber is the business number the checkout deep link targets,
	// in international format without the leading plus.
	WhatsAppNumber string

	// AppBaseURL is used to build links embedded in outbound emails.
	AppBaseURL string
}

func Load() Config {
	return Config{
		Addr:        getenv("ADDR", ":8080"),
		StoreDriver: getenv("STORE_DRIVER", "memory"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "bareandbeautiful"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		EmailBaseURL:          getenv("EMAIL_BASE_URL", "https://api.emailjs.com"),
		EmailServiceID:        os.Getenv("EMAIL_SERVICE_ID"),
		EmailPublicKey:        os.Getenv("EMAIL_PUBLIC_KEY"),
		EmailCustomerTemplate: os.Getenv("EMAIL_CUSTOMER_TEMPLATE"),
		EmailBusinessTemplate: os.Getenv("EMAIL_BUSINESS_TEMPLATE"),
		EmailVerifyTemplate:   os.Getenv("EMAIL_VERIFY_TEMPLATE"),

		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),

		AppBaseURL: getenv("APP_BASE_URL", "http://localhost:8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
