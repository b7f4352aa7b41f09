package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"orderdesk/internal/config"
	"orderdesk/internal/database"
	"orderdesk/internal/domain"
	"orderdesk/internal/logger"
	"orderdesk/internal/ordering"
	"orderdesk/internal/storage"
	"orderdesk/internal/validation"
)

var (
	configPath     string
	migrationsPath string
)

func main() {
	root := &cobra.Command{
		Use:           "orderdesk",
		Short:         "Restaurant order-management data layer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&migrationsPath, "migrations", "migrations", "path to migrations directory")

	root.AddCommand(
		migrateCmd(),
		seedCmd(),
		placeCmd(),
		ordersCmd(),
		salesCmd(),
		suggestCmd(),
		demoCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withService opens the database and hands a wired service to fn.
func withService(fn func(ctx context.Context, svc *ordering.Service, store storage.Store) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New("orderdesk")
	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	store := storage.NewPostgres(db)
	return fn(context.Background(), ordering.NewService(store, log), store)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := logger.New("orderdesk")
			db, err := database.New(cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.RunMigrations(context.Background(), migrationsPath)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a starter menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, _ *ordering.Service, store storage.Store) error {
				return seedMenu(ctx, store, cmd)
			})
		},
	}
}

func seedMenu(ctx context.Context, store storage.Store, cmd *cobra.Command) error {
	menu := []struct {
		name  string
		price string
	}{
		{"Burger", "10.99"},
		{"Pizza", "12.99"},
		{"French Fries", "3.99"},
		{"Soda", "1.99"},
	}
	for _, entry := range menu {
		price, err := domain.ParseAmount(entry.price)
		if err != nil {
			return err
		}
		if err := validation.MenuItem(entry.name, price); err != nil {
			return err
		}
		id, err := store.InsertMenuItem(ctx, entry.name, price)
		if err != nil {
			if domain.IsConflict(err) {
				cmd.Printf("skipping %s: already on the menu\n", entry.name)
				continue
			}
			return err
		}
		cmd.Printf("added menu item %d: %s (%s)\n", id, entry.name, price)
	}
	return nil
}

func placeCmd() *cobra.Command {
	var (
		customerID int64
		name       string
		email      string
		phone      string
		itemSpecs  []string
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order",
		Example: `  orderdesk place --name "Jane Doe" --email jane@example.com --phone 9876543210 --item 1:2 --item 2:1
  orderdesk place --customer 1 --item 3:1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseItemSpecs(itemSpecs)
			if err != nil {
				return err
			}

			req := domain.PlaceOrderRequest{
				CustomerID: customerID,
				Items:      items,
			}
			if customerID <= 0 {
				req.Customer = &domain.CustomerInfo{Name: name, Email: email, Phone: phone}
			}

			return withService(func(ctx context.Context, svc *ordering.Service, _ storage.Store) error {
				result, err := svc.PlaceOrder(ctx, req)
				if err != nil {
					return err
				}
				cmd.Printf("order %d placed for customer %d, total %s\n",
					result.OrderID, result.CustomerID, result.Total)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer", 0, "existing customer id")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "line item as menuItemID:quantity (repeatable)")
	return cmd
}

// parseItemSpecs converts "id:qty" flags into line items.
func parseItemSpecs(specs []string) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(specs))
	for _, spec := range specs {
		idPart, qtyPart, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected menuItemID:quantity", spec)
		}
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid menu item id in %q: %w", spec, err)
		}
		qty, err := strconv.Atoi(qtyPart)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", spec, err)
		}
		items = append(items, domain.LineItem{MenuItemID: id, Quantity: qty})
	}
	return items, nil
}

func ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders <customer-id>",
		Short: "List a customer's orders, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid customer id %q: %w", args[0], err)
			}
			return withService(func(ctx context.Context, svc *ordering.Service, _ storage.Store) error {
				orders, err := svc.OrdersForCustomer(ctx, customerID)
				if err != nil {
					return err
				}
				if len(orders) == 0 {
					cmd.Println("no orders")
					return nil
				}
				for _, o := range orders {
					cmd.Printf("order %d: %s, total %s\n", o.ID, o.Date, o.Total)
				}
				return nil
			})
		},
	}
}

func salesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales <date>",
		Short: "Total sales for a calendar date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc *ordering.Service, _ storage.Store) error {
				total, err := svc.TotalSalesForDay(ctx, args[0])
				if err != nil {
					return err
				}
				cmd.Printf("total sales for %s: %s\n", args[0], total)
				return nil
			})
		},
	}
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <phone>",
		Short: "Recommend menu items for a customer by phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc *ordering.Service, _ storage.Store) error {
				suggestions, err := svc.SuggestMenuItems(ctx, args[0])
				if err != nil {
					return err
				}
				if len(suggestions) == 0 {
					cmd.Println("no order history to suggest from")
					return nil
				}
				for _, item := range suggestions {
					cmd.Printf("%d: %s (%s)\n", item.ID, item.Name, item.Price)
				}
				return nil
			})
		},
	}
}
