package cli

import (
	"context"
	"os"
	"strings"

	"github.com/aGautrain/legeclair/internal/client/api"
	"github.com/aGautrain/legeclair/internal/client/guard"
	"github.com/aGautrain/legeclair/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create an account.
// Success acts as a login for this process only; the password byte slice is
// wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok := a.session.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if !ok {
		printlnFn("Registration failed:", a.session.Err())
		return nil
	}

	a.path = guard.HomePath
	printlnFn("Welcome,", a.session.User().Username)
	return nil
}

// Login prompts for credentials and an optional "remember me" choice, then
// authenticates. On success the session lands in the chosen medium and the
// view moves to the documents home.
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

	answer, err := getSimpleText(a.reader, "Remember me? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	remember := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	if !a.session.Login(ctx, email, string(password), remember) {
		printlnFn("Login failed:", a.session.Err())
		return nil
	}

	a.path = guard.HomePath
	printlnFn("Welcome,", a.session.User().Username)
	return nil
}

// Logout wipes the session from memory and both storage media and routes
// back to the login view. Safe to call when already anonymous.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.path = guard.LoginPath
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current user, refreshed from the backend when possible.
func (a *App) Whoami(ctx context.Context) error {
	if !a.session.Authenticated() {
		printlnFn("Not logged in")
		return nil
	}
	if err := a.session.RefreshProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh failed, showing cached user", "error", err)
	}
	renderUser(os.Stdout, a.session.User())
	return nil
}

// Profile interactively updates first and last name. Empty answers leave
// the field untouched.
func (a *App) Profile(ctx context.Context) error {
	if !a.session.Authenticated() {
		printlnFn("Not logged in")
		return nil
	}

	var upd api.ProfileUpdate
	if v, err := getSimpleText(a.reader, "First name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		upd.FirstName = &v
	}
	if v, err := getSimpleText(a.reader, "Last name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		upd.LastName = &v
	}
	if upd.FirstName == nil && upd.LastName == nil {
		printlnFn("Nothing to update")
		return nil
	}

	if !a.session.UpdateProfile(ctx, upd) {
		printlnFn("Update failed:", a.session.Err())
		return nil
	}
	renderUser(os.Stdout, a.session.User())
	return nil
}
