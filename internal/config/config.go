package config

import "os"

type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	GatewayKeyID        string
	GatewayKeySecret    string
	WhatsAppPhoneNumber string
	WhatsAppAccessToken string
}

func Load() Config {
	addr := os.Getenv("STORE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:                addr,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		GatewayKeyID:        os.Getenv("RAZORPAY_KEY"),
		GatewayKeySecret:    os.Getenv("RAZORPAY_SECRET"),
		WhatsAppPhoneNumber: os.Getenv("PHONE_NUMBER_ID"),
		WhatsAppAccessToken: os.Getenv("ACCESS_TOKEN"),
	}
}
