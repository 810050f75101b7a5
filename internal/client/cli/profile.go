package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/soulara/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.FetchProfile(ctx); err != nil {
		return a.report(err)
	}
	printUser(a.out, a.auth.Store().State().User)
	return nil
}

func printUser(w io.Writer, u *models.User) {
	if u == nil {
		return
	}
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-13s %s\n", label+":", value)
		}
	}
	line("Name", u.FullName())
	line("Email", u.Email)
	line("Phone", u.Phone)
	line("Born", u.DOB)
	line("Gender", string(u.Gender))
	line("Bio", u.Bio)
	line("Interests", strings.Join(u.Interests, ", "))
	line("Languages", strings.Join(u.Languages, ", "))
	line("Occupation", u.Occupation)
	line("Education", string(u.Education))
	line("Looking for", string(u.LookingFor))
	if u.Location != nil {
		line("Location", strings.Trim(u.Location.City+", "+u.Location.Country, ", "))
	}
	line("Subscription", string(u.Subscription))
	if u.ProfileCompleteness != nil {
		line("Complete", strconv.Itoa(*u.ProfileCompleteness)+"%")
	}
	line("Avatar", u.Avatar)
}

// fieldSetters map the names accepted by "set" to patch builders.
var fieldSetters = map[string]func(v string) (models.UserPatch, error){
	"firstName":  func(v string) (models.UserPatch, error) { return models.UserPatch{FirstName: &v}, nil },
	"lastName":   func(v string) (models.UserPatch, error) { return models.UserPatch{LastName: &v}, nil },
	"phone":      func(v string) (models.UserPatch, error) { return models.UserPatch{Phone: &v}, nil },
	"dob":        func(v string) (models.UserPatch, error) { return models.UserPatch{DOB: &v}, nil },
	"bio":        func(v string) (models.UserPatch, error) { return models.UserPatch{Bio: &v}, nil },
	"occupation": func(v string) (models.UserPatch, error) { return models.UserPatch{Occupation: &v}, nil },
	"religion":   func(v string) (models.UserPatch, error) { return models.UserPatch{Religion: &v}, nil },
	"interests":  func(v string) (models.UserPatch, error) { return models.UserPatch{Interests: splitList(v)}, nil },
	"languages":  func(v string) (models.UserPatch, error) { return models.UserPatch{Languages: splitList(v)}, nil },
	"height": func(v string) (models.UserPatch, error) {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || h <= 0 {
			return models.UserPatch{}, fmt.Errorf("height must be a positive number")
		}
		return models.UserPatch{Height: &h}, nil
	},
	"gender":             enumSetter(func(p *models.UserPatch, v models.Gender) { p.Gender = &v }),
	"privacy":            enumSetter(func(p *models.UserPatch, v models.Privacy) { p.Privacy = &v }),
	"lookingFor":         enumSetter(func(p *models.UserPatch, v models.LookingFor) { p.LookingFor = &v }),
	"education":          enumSetter(func(p *models.UserPatch, v models.Education) { p.Education = &v }),
	"smoking":            enumSetter(func(p *models.UserPatch, v models.Smoking) { p.Smoking = &v }),
	"drinking":           enumSetter(func(p *models.UserPatch, v models.Drinking) { p.Drinking = &v }),
	"relationshipStatus": enumSetter(func(p *models.UserPatch, v models.RelationshipStatus) { p.RelationshipStatus = &v }),
	"children":           enumSetter(func(p *models.UserPatch, v models.Children) { p.Children = &v }),
}

func enumSetter[T interface {
	~string
	Valid() bool
}](assign func(*models.UserPatch, T)) func(string) (models.UserPatch, error) {
	return func(v string) (models.UserPatch, error) {
		e := T(v)
		if !e.Valid() {
			return models.UserPatch{}, fmt.Errorf("%q is not an accepted value", v)
		}
		var p models.UserPatch
		assign(&p, e)
		return p, nil
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func settableFields() string {
	names := make([]string, 0, len(fieldSetters))
	for n := range fieldSetters {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Set updates one profile field: set <field> <value...>.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: set <field> <value>")
		fmt.Fprintln(a.out, "Fields:", settableFields())
		return nil
	}
	build, ok := fieldSetters[args[0]]
	if !ok {
		fmt.Fprintln(a.out, "Unknown field:", args[0])
		fmt.Fprintln(a.out, "Fields:", settableFields())
		return nil
	}
	patch, err := build(strings.Join(args[1:], " "))
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.SaveProfile(ctx, patch); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

// Location updates the member's city: location <city> [country].
func (a *App) Location(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: location <city> [country]")
		return nil
	}
	loc := models.Location{City: args[0]}
	if len(args) > 1 {
		loc.Country = strings.Join(args[1:], " ")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.UpdateLocation(ctx, loc); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Location updated")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.auth.ChangePassword(ctx, current, next); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) Deactivate(ctx context.Context) error {
	answer, err := a.prompt("Deactivate your account? Type 'yes' to confirm")
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.auth.Deactivate(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Account deactivated. Goodbye!")
	return nil
}
