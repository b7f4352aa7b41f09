package main

import (
	"context"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
	"orderdesk/internal/logger"
	"orderdesk/internal/ordering"
	"orderdesk/internal/storage"
)

// demoCmd walks the whole workflow against the in-memory store: no
// database required.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a placement and reporting walkthrough against an in-memory store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store := storage.NewMemory()
			svc := ordering.NewService(store, logger.New("orderdesk-demo"))

			if err := seedMenu(ctx, store, cmd); err != nil {
				return err
			}

			jane := &domain.CustomerInfo{
				Name:  "Jane Doe",
				Email: "jane@example.com",
				Phone: "987-654-3210",
			}

			first, err := svc.PlaceOrder(ctx, domain.PlaceOrderRequest{
				Customer: jane,
				Items: []domain.LineItem{
					{MenuItemID: 1, Quantity: 2},
					{MenuItemID: 2, Quantity: 1},
				},
			})
			if err != nil {
				return err
			}
			cmd.Printf("placed order %d, total %s\n", first.OrderID, first.Total)

			// Same phone again: the existing customer row is reused.
			second, err := svc.PlaceOrder(ctx, domain.PlaceOrderRequest{
				Customer: jane,
				Items:    []domain.LineItem{{MenuItemID: 4, Quantity: 3}},
			})
			if err != nil {
				return err
			}
			cmd.Printf("placed order %d for returning customer %d, total %s\n",
				second.OrderID, second.CustomerID, second.Total)

			orders, err := svc.OrdersForCustomer(ctx, first.CustomerID)
			if err != nil {
				return err
			}
			for _, o := range orders {
				cmd.Printf("order %d: %s, total %s\n", o.ID, o.Date, o.Total)
			}

			today := orders[0].Date
			total, err := svc.TotalSalesForDay(ctx, today)
			if err != nil {
				return err
			}
			cmd.Printf("total sales for %s: %s\n", today, total)

			suggestions, err := svc.SuggestMenuItems(ctx, jane.Phone)
			if err != nil {
				return err
			}
			for _, item := range suggestions {
				cmd.Printf("suggested: %s (%s)\n", item.Name, item.Price)
			}
			return nil
		},
	}
}
