package main

import (
	"fmt"

	"skystore/storefront-api/api"
	"skystore/storefront-api/config"
	"skystore/storefront-api/db"
	"skystore/storefront-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if path := *config.LoadFixtures; path != "" {
		database, err := db.New()
		if err != nil {
			panic(err)
		}

		if err := service.LoadFixtures(database, path); err != nil {
			panic(err)
		}

		return
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
