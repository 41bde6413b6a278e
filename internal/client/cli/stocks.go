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

// formatMoney renders a price with its currency code, e.g. "230.15 USD".
func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func printStockPage(page *api.StockPage) {
	for _, s := range page.Stocks {
		fmt.Printf("%-6s  %-35s  %-8s  %s\n", s.Symbol, s.Name, s.Exchange, formatMoney(s.LastPrice, s.Currency))
	}
	fmt.Printf("Page %d of %d (%d stocks)\n", page.Page, page.Pages, page.Total)
}

// Stocks lists one page of the catalog. Usage: stocks [page]
func (a *App) Stocks(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Println("Usage: stocks [page]")
			return nil
		}
		page = n
	}

	result, err := a.api.ListStocks(ctx, page, "")
	if err != nil {
		log.Printf("Listing stocks failed: %s", err.Error())
		return err
	}
	printStockPage(result)
	return nil
}

// Search filters the catalog by a case-insensitive substring of symbol or
// name. Usage: search <text>
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: search <text>")
		return nil
	}
	query := strings.Join(args, " ")

	result, err := a.api.ListStocks(ctx, 1, query)
	if err != nil {
		log.Printf("Search failed: %s", err.Error())
		return err
	}
	if result.Total == 0 {
		fmt.Println("No matches")
		return nil
	}
	printStockPage(result)
	return nil
}

// Stock shows one catalog entry. Usage: stock <symbol>
func (a *App) Stock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: stock <symbol>")
		return nil
	}
	symbol := strings.ToUpper(args[0])

	stock, err := a.api.GetStock(ctx, symbol)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Printf("Unknown symbol %s\n", symbol)
			return nil
		}
		log.Printf("Stock lookup failed: %s", err.Error())
		return err
	}

	fmt.Printf("%s (%s)\n", stock.Name, stock.Symbol)
	fmt.Printf("Exchange: %s\n", stock.Exchange)
	fmt.Printf("Last price: %s\n", formatMoney(stock.LastPrice, stock.Currency))
	return nil
}
