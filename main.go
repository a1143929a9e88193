package main

import (
	"flag"

	"github.com/animeinsights/blog/config"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/routes"
	"github.com/animeinsights/blog/utils"
)

func main() {
	seed := flag.Bool("seed", false, "create the admin user and sample posts, then exit")
	flag.Parse()

	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	utils.InitRedis(cfg)

	db := config.InitDatabase()
	defer func() {
		if err := config.CloseDatabase(); err != nil {
			utils.Sugar.Warnf("database disconnect failed: %v", err)
		}
	}()

	users, err := repository.NewUserRepository(db)
	if err != nil {
		utils.Sugar.Fatalf("user repository init failed: %v", err)
	}
	posts := repository.NewPostRepository(db)

	if *seed {
		if err := runSeed(users, posts); err != nil {
			utils.Sugar.Fatalf("seeding failed: %v", err)
		}
		utils.Sugar.Info("seeding completed")
		return
	}

	r := routes.SetupRouter(users, posts)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
