package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dsmirnov/stockfolio/internal/client/api"
)

// Filings lists the filings of a symbol. Usage: filings <symbol>
func (a *App) Filings(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: filings <symbol>")
		return nil
	}
	symbol := strings.ToUpper(args[0])

	filings, err := a.api.ListFilings(ctx, symbol)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Printf("Unknown symbol %s\n", symbol)
			return nil
		}
		log.Printf("Listing filings failed: %s", err.Error())
		return err
	}
	if len(filings) == 0 {
		fmt.Println("No filings on record")
		return nil
	}

	for _, f := range filings {
		fmt.Printf("%-36s  %-6s  %-8s  %s\n", f.ID, f.FilingType, f.Period, f.FiledAt.Format("2006-01-02"))
	}
	return nil
}

// Document fetches a short-lived download link for a filing document.
// Usage: doc <filing id>
func (a *App) Document(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}
	if len(args) != 1 {
		fmt.Println("Usage: doc <filing id>")
		return nil
	}

	url, err := a.api.FilingDocumentURL(ctx, args[0])
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such filing")
			return nil
		}
		log.Printf("Fetching document link failed: %s", err.Error())
		return err
	}

	fmt.Println("Download (link valid for 15 minutes):")
	fmt.Println(url)
	return nil
}
