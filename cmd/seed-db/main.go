// Command seed-db runs migrations and loads the demo data set: the product
// catalog plus sample orders, wallet history, and notifications for the demo
// session.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/agrochain/smarthub/db"
	"github.com/agrochain/smarthub/internal/domain/notification"
	"github.com/agrochain/smarthub/internal/domain/order"
	"github.com/agrochain/smarthub/internal/domain/product"
	"github.com/agrochain/smarthub/internal/domain/wallet"
	"github.com/agrochain/smarthub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	var (
		databaseURL   string
		productsFile  string
		demoSessionID string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to a products JSON file (defaults to the embedded catalog)")
	flag.StringVar(&demoSessionID, "demo-session", "", "session ID to attach demo dashboard data to (skipped when empty)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, demoSessionID); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, demoSessionID string) error {
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

	if err := seedProducts(ctx, pool, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if demoSessionID != "" {
		if err := seedDemoDashboard(ctx, pool, demoSessionID); err != nil {
			return errors.Wrap(err, "seed demo dashboard")
		}
	}

	return nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string) error {
	data := db.SeedProducts
	if productsFile != "" {
		slog.Info("reading products file", slog.String("path", productsFile))
		var err error
		data, err = os.ReadFile(productsFile)
		if err != nil {
			return errors.Wrap(err, "read products file")
		}
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	repo := repository.NewProductRepository(pool)
	for _, p := range products {
		if err := repo.Upsert(ctx, p); err != nil {
			return errors.Wrapf(err, "upsert product %d", p.ID)
		}
		slog.Info("upserted product", slog.Int("id", p.ID), slog.String("name", p.Name))
	}

	return nil
}

// seedDemoDashboard loads the sample orders, wallet transactions, and
// notifications the dashboard shows on first visit.
func seedDemoDashboard(ctx context.Context, pool *pgxpool.Pool, sessionID string) error {
	slog.Info("seeding demo dashboard data", slog.String("session", sessionID))

	now := time.Now()
	orderRepo := repository.NewOrderRepository(pool)
	demoOrders := []order.Order{
		{
			ID:     "83335",
			Status: order.StatusPending,
			Items:  []order.Item{{ProductID: 1, Name: "Cashew Nuts", Quantity: 1}},
			Total:  decimal.RequireFromString("145.00"),
		},
		{
			ID:     "90299",
			Status: order.StatusDelivered,
			Items:  []order.Item{{ProductID: 5, Name: "Cocoa Beans", Quantity: 2}},
			Total:  decimal.RequireFromString("345.00"),
		},
		{
			ID:     "83285",
			Status: order.StatusCanceled,
			Items:  []order.Item{{ProductID: 4, Name: "Dried Ginger", Quantity: 1}},
			Total:  decimal.RequireFromString("345.00"),
		},
	}
	for i, o := range demoOrders {
		o.CreatedAt = now.AddDate(0, 0, -3*(i+1))
		if err := orderRepo.Create(ctx, sessionID, &o); err != nil {
			return errors.Wrapf(err, "create order %s", o.ID)
		}
	}

	walletRepo := repository.NewWalletRepository(pool)
	demoEntries := []struct {
		kind        wallet.Kind
		description string
		amount      string
	}{
		{wallet.Credit, "Deposit", "500.00"},
		{wallet.Debit, "Order #90299", "345.00"},
		{wallet.Credit, "Refund #83285", "345.00"},
	}
	for i, d := range demoEntries {
		entry, err := wallet.NewEntry(uuid.NewString(), d.kind, d.description,
			decimal.RequireFromString(d.amount), now.AddDate(0, 0, -i))
		if err != nil {
			return errors.Wrapf(err, "build wallet entry %q", d.description)
		}
		if err := walletRepo.Add(ctx, sessionID, entry); err != nil {
			return errors.Wrapf(err, "add wallet entry %q", d.description)
		}
	}

	notifRepo := repository.NewNotificationRepository(pool)
	demoNotifications := []notification.Notification{
		{Kind: notification.KindAccepted, Title: "Order accepted", Body: "Order #83335 was accepted by the exporter"},
		{Kind: notification.KindRequest, Title: "Quote requested", Body: "A buyer requested a quote for Premium Mangoes"},
		{Kind: notification.KindConfirmed, Title: "Shipment confirmed", Body: "Order #90299 has been confirmed for cargo"},
		{Kind: notification.KindDeclined, Title: "Request declined", Body: "Your MOQ adjustment for Kolanut was declined"},
	}
	for i, n := range demoNotifications {
		n.ID = uuid.NewString()
		n.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		if err := notifRepo.Add(ctx, sessionID, &n); err != nil {
			return errors.Wrapf(err, "add notification %q", n.Title)
		}
	}

	return nil
}
