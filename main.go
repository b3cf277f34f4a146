package main

import (
	"log"

	"pythonista/config"
	"pythonista/database"
	"pythonista/routers"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := routers.NewApp()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
