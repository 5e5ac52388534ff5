// Command seed-db loads the menu catalog, default coupons and a staff API key
// into the database. It is idempotent: rows are upserted by primary key.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/db"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/menu"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/repository"
)

type menuItemJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

func main() {
	var (
		databaseURL string
		menuFile    string
		staffKey    string
		pepper      string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&menuFile, "menu-file", "", "path to a menu JSON file (default: embedded catalog)")
	flag.StringVar(&staffKey, "staff-key", "", "staff API key to seed (or FOODBUZZ_SEED_STAFF_KEY env)")
	flag.StringVar(&pepper, "staff-key-pepper", "", "HMAC pepper for staff key hashing (or FOODBUZZ_STAFF_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if staffKey == "" {
		staffKey = os.Getenv("FOODBUZZ_SEED_STAFF_KEY")
	}
	if staffKey == "" {
		slog.Error("staff key is required: set --staff-key or FOODBUZZ_SEED_STAFF_KEY")
		os.Exit(1)
	}
	if pepper == "" {
		pepper = os.Getenv("FOODBUZZ_STAFF_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, menuFile, staffKey, pepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, menuFile, staffKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedMenu(ctx, repository.NewMenuRepository(pool), menuFile); err != nil {
		return errors.Wrap(err, "seed menu")
	}
	if err := seedCoupons(ctx, repository.NewCouponRepository(pool)); err != nil {
		return errors.Wrap(err, "seed coupons")
	}
	if err := seedStaffKey(ctx, repository.NewStaffKeyRepository(pool), staffKey, pepper); err != nil {
		return errors.Wrap(err, "seed staff key")
	}

	return nil
}

func seedMenu(ctx context.Context, repo *repository.MenuRepository, menuFile string) error {
	data := db.SeedMenu
	if menuFile != "" {
		slog.Info("reading menu file", slog.String("path", menuFile))
		var err error
		data, err = os.ReadFile(menuFile)
		if err != nil {
			return errors.Wrap(err, "read menu file")
		}
	}

	var items []menuItemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "parse menu JSON")
	}

	slog.Info("upserting menu items", slog.Int("count", len(items)))

	for _, it := range items {
		if err := repo.Upsert(ctx, menu.Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Category: it.Category,
			ImageURL: it.Image,
		}); err != nil {
			return errors.Wrapf(err, "upsert menu item %s", it.ID)
		}

		slog.Info("upserted menu item", slog.String("id", it.ID), slog.String("name", it.Name))
	}

	return nil
}

func seedCoupons(ctx context.Context, repo *repository.CouponRepository) error {
	slog.Info("seeding default coupons")

	for _, c := range coupon.Defaults() {
		if err := repo.Upsert(ctx, c); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", c.Code)
		}

		slog.Info("upserted coupon", slog.String("code", c.Code), slog.String("description", c.Description))
	}

	return nil
}

func seedStaffKey(ctx context.Context, repo *repository.StaffKeyRepository, staffKey, pepper string) error {
	slog.Info("seeding default staff key")

	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(staffKey))
	keyHash := hex.EncodeToString(mac.Sum(nil))

	if err := repo.Upsert(ctx, repository.StaffKey{
		ID:      "default",
		KeyHash: keyHash,
		Name:    "Default staff key",
		Role:    "staff",
	}); err != nil {
		return errors.Wrap(err, "upsert default staff key")
	}

	slog.Info("upserted staff key", slog.String("id", "default"))

	return nil
}
