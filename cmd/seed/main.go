package main

import (
	"FriendKeeper/internal/config"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/seed"
	"FriendKeeper/internal/service"
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"
)

func main() {
	login := flag.String("login", seed.DefaultLogin, "demo user login")
	password := flag.String("password", seed.DefaultPassword, "demo user password")
	randSeed := flag.Int64("seed", 0, "random seed (0 = time based)")
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	friendRepo := repo.NewFriendRepository(gormDB)
	friendService := service.NewFriendService(friendRepo, sugar)
	s := seed.New(
		service.NewUserService(repo.NewUserRepository(gormDB)),
		friendService,
		service.NewInteractionService(repo.NewInteractionRepository(gormDB), friendRepo, sugar),
		sugar,
	)

	res, err := s.Run(context.Background(), seed.Options{Login: *login, Password: *password, Seed: *randSeed})
	if err != nil {
		sugar.Fatalw("seeding failed", "error", err)
	}
	fmt.Printf("Seeded user %q (id %d): %d friends, %d interactions\n",
		res.User.Login, res.User.ID, res.Friends, res.Interactions)
}
