package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	JWTSecret          string
	JWTTTL             time.Duration
	PayMongoSecretKey  string
	PayMongoBaseURL    string
	DefaultDeliveryFee float64
	Currency           string
	AdminUserName      string
	AdminPassword      string
	CashierUserName    string
	CashierPassword    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	return &Config{
		Port:               getEnv("PORT", "8000"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "pos"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:          getEnv("JWT_SECRET", "changeme"),
		JWTTTL:             time.Duration(24) * time.Hour,
		PayMongoSecretKey:  os.Getenv("PAYMONGO_SECRET_KEY"),
		PayMongoBaseURL:    getEnv("PAYMONGO_BASE_URL", ""),
		DefaultDeliveryFee: getEnvFloat("DEFAULT_DELIVERY_FEE", 50),
		Currency:           getEnv("CURRENCY", "PHP"),
		AdminUserName:      getEnv("ADMIN_USERNAME", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		CashierUserName:    getEnv("CASHIER_USERNAME", ""),
		CashierPassword:    getEnv("CASHIER_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid %s=%q, using default %v", key, v, fallback)
	}
	return fallback
}
