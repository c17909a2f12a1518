package main

import "stockroom/internal/app"

// @title        Stockroom API
// @version      1.0
// @description  Product inventory and password reset service.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
