package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"

	"encuentros/config"
	"encuentros/db"
	"encuentros/models"
	"encuentros/services"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configPath string
		users      int
		requests   int
		workers    int
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.IntVar(&users, "users", 200, "Users to create")
	flag.IntVar(&requests, "requests", 1000, "Random friend requests to send between them")
	flag.IntVar(&workers, "workers", 8, "Concurrent request senders")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := db.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	ids, err := createUsers(users)
	if err != nil {
		log.Fatalf("Failed to create users: %v", err)
	}
	log.Printf("Created %d users", len(ids))
	if len(ids) < 2 {
		return
	}

	tx := db.NewTransactor(db.ORM)
	svc := services.NewFriendRequestService(tx, db.NewRelationshipRepository(), nil, nil, config.AppConfig.Friends.ConflictRetries)

	var sent, auto, conflicts int64
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < requests; i++ {
		from := ids[rand.Intn(len(ids))]
		to := ids[rand.Intn(len(ids))]
		if from == to {
			continue
		}
		g.Go(func() error {
			res, err := svc.CreateRequest(ctx, from, to)
			switch {
			case errors.Is(err, services.ErrConflict):
				atomic.AddInt64(&conflicts, 1)
				return nil
			case err != nil:
				return err
			case res.Outcome == services.OutcomeAutoAccepted:
				atomic.AddInt64(&auto, 1)
			default:
				atomic.AddInt64(&sent, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Seeding stopped: %v", err)
	}
	log.Printf("Requests: %d pending, %d auto-accepted, %d conflicts", sent, auto, conflicts)
}

func createUsers(n int) ([]int64, error) {
	created := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		hash, err := services.HashPassword(gofakeit.Password(true, true, true, false, false, 12))
		if err != nil {
			return nil, err
		}
		first := gofakeit.FirstName()
		created = append(created, models.User{
			Name:         first,
			Surname:      gofakeit.LastName(),
			Email:        fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), gofakeit.UUID()),
			PasswordHash: hash,
		})
	}
	if err := db.ORM.CreateInBatches(&created, 100).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, len(created))
	for i, u := range created {
		ids[i] = u.ID
	}
	return ids, nil
}
