package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/config"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/routes"
	"tienda_back_end/internal/services"
)

func main() {
	config.Load()

	accessToken := os.Getenv("MP_ACCESS_TOKEN")
	if accessToken == "" {
		log.Fatal("❌ MP_ACCESS_TOKEN no está configurado")
	}

	db := database.Connect()
	defer db.Close()

	gateway, err := services.NewMercadoPago(accessToken, os.Getenv("BASE_URL"), os.Getenv("CURRENCY_ID"))
	if err != nil {
		log.Fatalf("❌ Error inicializando MercadoPago: %v", err)
	}
	log.Println("💳 MercadoPago listo")

	r := gin.Default()

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	carts := cart.NewRedisStore(db.Redis)
	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Carts:   carts,
		Feed:    carts,
		Gateway: gateway,
		Policy:  cart.PolicyFromEnv(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Servidor escuchando en :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Error arrancando el servidor: %v", err)
	}
}
