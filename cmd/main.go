package main

import (
	"storefx/internal/app"

	"github.com/sirupsen/logrus"
)

// @title						storefx API
// @version					1.0
// @description				Cached exchange rate, projected storefront prices and rate change feed.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("storefx stopped")
	}
}
