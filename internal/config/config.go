package config

import (
	"log"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No se encontró archivo .env — seguimos con las variables de entorno del sistema")
	} else {
		log.Println("✅ Archivo .env cargado correctamente")
	}
}
