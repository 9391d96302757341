package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/lapstorecommerce/laptop-store-backend/internal/address"
	"github.com/lapstorecommerce/laptop-store-backend/internal/config"
	"github.com/lapstorecommerce/laptop-store-backend/internal/coupon"
	"github.com/lapstorecommerce/laptop-store-backend/internal/notify"
	"github.com/lapstorecommerce/laptop-store-backend/internal/order"
	"github.com/lapstorecommerce/laptop-store-backend/internal/payment"
	"github.com/lapstorecommerce/laptop-store-backend/internal/product"
	"github.com/lapstorecommerce/laptop-store-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	migrate(db)

	var otpSender user.OTPSender
	if cfg.WhatsAppPhoneNumber != "" && cfg.WhatsAppAccessToken != "" {
		otpSender = notify.NewWhatsAppSender(cfg.WhatsAppPhoneNumber, cfg.WhatsAppAccessToken)
	} else {
		log.Println("whatsapp credentials missing, logging OTPs instead")
		otpSender = notify.LogSender{}
	}

	userService := user.NewService(user.NewPostgresRepository(db), user.NewOTPStore(), otpSender)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	couponService := coupon.NewService(coupon.NewPostgresRepository(db))
	couponHandler := coupon.NewHandler(couponService)

	gateway := payment.NewHTTPGateway(cfg.GatewayKeyID, cfg.GatewayKeySecret)
	orderService := order.NewService(order.NewPostgresRepository(db), productService, couponService,
		gateway, cfg.GatewayKeyID, cfg.GatewayKeySecret)
	orderHandler := order.NewHandler(orderService)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService, userService)

	// public routes go first so they bypass the JWT middleware below
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)

	admin := app.Group("", user.AdminRequired)
	userHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	couponHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// migrate applies the idempotent schema. Statements are safe to rerun on
// every boot.
func migrate(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS product (
			product_id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT,
			brand TEXT,
			category TEXT,
			description TEXT,
			specs JSONB NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			reviews INT NOT NULL DEFAULT 0,
			price BIGINT NOT NULL DEFAULT 0,
			discount_percent BIGINT NOT NULL DEFAULT 0,
			final_price BIGINT NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			image TEXT,
			images JSONB NOT NULL DEFAULT '[]',
			is_new_item BOOLEAN NOT NULL DEFAULT FALSE,
			is_trending BOOLEAN NOT NULL DEFAULT FALSE,
			is_best_deal BOOLEAN NOT NULL DEFAULT FALSE,
			condition TEXT,
			config_options JSONB NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS coupon (
			coupon_id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			value BIGINT NOT NULL,
			min_order_value BIGINT NOT NULL DEFAULT 0,
			expiry_date TIMESTAMPTZ NOT NULL,
			usage_limit INT NOT NULL DEFAULT 100,
			used_count INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT UNIQUE,
			password TEXT,
			mobile TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'customer',
			is_profile_complete BOOLEAN NOT NULL DEFAULT FALSE,
			default_address_id TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS address (
			address_id TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			name TEXT,
			street TEXT,
			city TEXT,
			state TEXT,
			zip TEXT,
			phone TEXT,
			type TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			gateway_order_id TEXT NOT NULL UNIQUE,
			user_id INT NOT NULL DEFAULT 0,
			customer_name TEXT,
			customer_email TEXT,
			date TEXT,
			total BIGINT NOT NULL DEFAULT 0,
			coupon TEXT,
			coupon_value BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Pending',
			payment_status TEXT NOT NULL DEFAULT 'Pending',
			payment_method TEXT,
			gateway_payment_id TEXT NOT NULL DEFAULT '',
			gateway_signature TEXT NOT NULL DEFAULT '',
			paid_at TIMESTAMPTZ,
			map_link TEXT,
			shipping_address JSONB NOT NULL DEFAULT '{}',
			items JSONB NOT NULL DEFAULT '[]',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
