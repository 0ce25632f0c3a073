package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reuse/internal/config"
	"reuse/internal/db"
	"reuse/internal/model"
	"reuse/internal/repository"
)

const (
	demoEmail    = "demo@reuse.com"
	demoPassword = "demo123A!"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	items := repository.NewItemRepository(gormDB)
	ctx := context.Background()

	user, err := seedDemoUser(ctx, users, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedStarterItems(ctx, gormDB, items, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s (id=%d)", user.Email, user.ID)
	log.Printf("  - Starter items created: %d", created)
}

// seedDemoUser creates the demo account if it does not exist yet.
func seedDemoUser(ctx context.Context, users repository.UserRepository, cost int) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, demoEmail)
	if err == nil {
		log.Printf("Demo user already exists (id=%d)", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: "Demo", Email: demoEmail, Password: string(hashed)}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedStarterItems creates the starter listings, skipping titles that are
// already present for the demo user.
func seedStarterItems(ctx context.Context, gormDB *gorm.DB, items repository.ItemRepository, ownerID uint) (int, error) {
	description := func(s string) *string { return &s }

	starters := []model.Item{
		{Title: "Livro de Java", Description: description("Novo"), Type: "doacao", UserID: ownerID},
		{Title: "Teclado mecânico", Description: description("Cherry MX"), Type: "troca", UserID: ownerID},
	}

	created := 0
	for i := range starters {
		var count int64
		err := gormDB.WithContext(ctx).Model(&model.Item{}).
			Where("user_id = ? AND title = ?", ownerID, starters[i].Title).
			Count(&count).Error
		if err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if err := items.Create(ctx, &starters[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
