package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dsmirnov/stockfolio/internal/client/api"
	"github.com/dsmirnov/stockfolio/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates a new account. A
// successful registration logs the user in right away; the password buffer
// is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.auth.SignUp(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrEmailTaken):
			log.Printf("That email is already registered")
		case errors.Is(err, api.ErrInvalidInput):
			log.Printf("A valid email and a password of at least 8 characters are required")
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable, try again later")
		default:
			log.Printf("Registration unsuccessful: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Welcome, %s!\n", displayNameOf(identity))
	return nil
}

// Login prompts for credentials and authenticates. The password buffer is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			log.Printf("Invalid email or password")
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable, try again later")
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Welcome, %s!\n", displayNameOf(identity))
	return nil
}

// Logout drops the session and returns the user to the login prompt.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return a.Login(ctx)
}

// WhoAmI shows the authenticated identity.
func (a *App) WhoAmI(ctx context.Context) error {
	identity := a.auth.Identity()
	if identity == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (id %s)\n", identity.Username, identity.Email, identity.ID)
	return nil
}

func displayNameOf(identity *api.Identity) string {
	if identity.Username != "" {
		return identity.Username
	}
	return identity.Email
}
