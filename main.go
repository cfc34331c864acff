package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/clubsync/orghub/cmd/app"
)

// @contact.name   API Support
// @contact.url    https://github.com/clubsync/orghub/issues
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token (internal JWT or identity-provider token)
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
