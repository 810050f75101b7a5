package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/soulara/internal/client/services"
)

// getSimpleText and getPassword are indirections that tests can swap.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// Signup collects the signup form, shows the password strength and
// registers the account. It does not sign in.
func (a *App) Signup(ctx context.Context) error {
	var in services.SignupInput
	var err error

	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &in.FirstName},
		{"Last name", &in.LastName},
		{"Email", &in.Email},
		{"Phone (optional)", &in.Phone},
	}
	for _, f := range fields {
		if *f.dst, err = a.prompt(f.label); err != nil {
			return err
		}
	}

	if in.Password, err = getPassword("Password", a.out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password strength: %s\n", services.PasswordStrength(in.Password))

	if in.ConfirmPassword, err = getPassword("Confirm password", a.out); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.auth.Signup(ctx, in); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Account created. Please log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.auth.Login(ctx, email, password); err != nil {
		return a.report(err)
	}
	u := a.auth.Store().State().User
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.FullName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(context.Context) error {
	s := a.auth.Store().State()
	switch {
	case s.Loading:
		fmt.Fprintln(a.out, "Status: loading")
	case s.IsAuthenticated:
		fmt.Fprintf(a.out, "Status: signed in as %s <%s>\n", s.User.FullName(), s.User.Email)
	default:
		fmt.Fprintln(a.out, "Status: signed out")
	}
	if s.Error != "" {
		fmt.Fprintln(a.out, "Last error:", s.Error)
	}
	return nil
}

func (a *App) ClearError(context.Context) error {
	a.auth.ClearError()
	return nil
}
