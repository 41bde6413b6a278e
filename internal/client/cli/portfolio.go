package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dsmirnov/stockfolio/internal/client/api"
)

// Portfolio lists the user's holdings.
func (a *App) Portfolio(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}

	items, err := a.api.Portfolio(ctx)
	if err != nil {
		log.Printf("Listing portfolio failed: %s", err.Error())
		return err
	}
	if len(items) == 0 {
		fmt.Println("Your portfolio is empty")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-6s  %10.4f shares  (added %s)\n", item.Symbol, item.Shares, item.AddedAt.Format("2006-01-02"))
	}
	return nil
}

// Add stores a holding; an existing holding of the same symbol has its share
// count replaced. Usage: add <symbol> <shares>
func (a *App) Add(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}
	if len(args) != 2 {
		fmt.Println("Usage: add <symbol> <shares>")
		return nil
	}

	symbol := strings.ToUpper(args[0])
	shares, err := strconv.ParseFloat(args[1], 64)
	if err != nil || shares <= 0 {
		fmt.Println("Shares must be a positive number")
		return nil
	}

	item, err := a.api.AddToPortfolio(ctx, symbol, shares)
	if err != nil {
		if errors.Is(err, api.ErrInvalidInput) {
			fmt.Printf("Unknown symbol %s\n", symbol)
			return nil
		}
		log.Printf("Adding to portfolio failed: %s", err.Error())
		return err
	}

	fmt.Printf("Holding %s: %g shares\n", item.Symbol, item.Shares)
	return nil
}

// Remove drops a holding. Usage: remove <symbol>
func (a *App) Remove(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}
	if len(args) != 1 {
		fmt.Println("Usage: remove <symbol>")
		return nil
	}
	symbol := strings.ToUpper(args[0])

	if err := a.api.RemoveFromPortfolio(ctx, symbol); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Printf("You do not hold %s\n", symbol)
			return nil
		}
		log.Printf("Removing from portfolio failed: %s", err.Error())
		return err
	}

	fmt.Printf("Removed %s\n", symbol)
	return nil
}
