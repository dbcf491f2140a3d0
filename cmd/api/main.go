package main

import (
	_ "car_marketplace/docs"
	"car_marketplace/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Car Marketplace Payments API
// @version         1.0
// @description     Listing pricing, gateway checkout and publish-on-payment for the car rental marketplace.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
