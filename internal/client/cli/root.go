package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if name := a.displayName(); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to stockfolio CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
