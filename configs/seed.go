package configs

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

// SeedAccounts creates the admin and the first cashier on an empty
// database so the POS is usable out of the box.
func SeedAccounts(cfg *Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	col := db.Collection("cashiers")

	seed := func(userName, password, name string, role entity.Role) error {
		if userName == "" || password == "" {
			log.Printf("skip seeding %s: missing credentials in env", role)
			return nil
		}
		count, err := col.CountDocuments(ctx, bson.M{"userName": userName})
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		now := time.Now()
		_, err = col.InsertOne(ctx, entity.Cashier{
			Name:      name,
			UserName:  userName,
			Password:  string(hash),
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	}

	if err := seed(cfg.AdminUserName, cfg.AdminPassword, "Admin", entity.RoleAdmin); err != nil {
		return err
	}
	return seed(cfg.CashierUserName, cfg.CashierPassword, "Cashier", entity.RoleCashier)
}

// SeedProducts fills an empty catalog with a few starter products.
func SeedProducts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	col := db.Collection("products")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	starters := []interface{}{
		entity.Product{Name: "Americano", Price: 100, CreatedAt: now, UpdatedAt: now},
		entity.Product{Name: "Cafe Latte", Price: 120, CreatedAt: now, UpdatedAt: now},
		entity.Product{Name: "Club Sandwich", Price: 180, CreatedAt: now, UpdatedAt: now},
	}
	_, err = col.InsertMany(ctx, starters)
	return err
}
