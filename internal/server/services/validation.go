package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	profile "github.com/dmitrijs2005/soulara/internal/client/models"
)

var jsonNames = map[string]string{
	"FirstName": "firstName",
	"LastName":  "lastName",
	"Email":     "email",
	"Phone":     "phone",
	"Password":  "password",
	"Bio":       "bio",
	"Interests": "interests",
	"Languages": "languages",
	"Height":    "height",
	"Min":       "agePreferences.min",
	"Max":       "agePreferences.max",
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	name := jsonNames[fe.Field()]
	if name == "" {
		name = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return invalid("%s is required", name)
	case "email":
		return invalid("please provide a valid email")
	case "min", "gte":
		return invalid("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return invalid("%s must be at most %s", name, fe.Param())
	}
	return invalid("%s is invalid", name)
}

type patchRules struct {
	FirstName *string  `validate:"omitempty,min=1,max=50"`
	LastName  *string  `validate:"omitempty,min=1,max=50"`
	Bio       *string  `validate:"omitempty,max=500"`
	Interests []string `validate:"omitempty,max=20"`
	Languages []string `validate:"omitempty,max=10"`
	Height    *float64 `validate:"omitempty,gte=100,lte=250"`
	Min       *int     `validate:"omitempty,gte=18,lte=100"`
	Max       *int     `validate:"omitempty,gte=18,lte=100"`
}

func validatePatch(p profile.UserPatch) error {
	rules := patchRules{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Bio:       p.Bio,
		Interests: p.Interests,
		Languages: p.Languages,
		Height:    p.Height,
	}
	if p.AgePreferences != nil {
		rules.Min, rules.Max = p.AgePreferences.Min, p.AgePreferences.Max
	}
	if err := validateStruct(rules); err != nil {
		return err
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		return invalid("agePreferences.min must not exceed agePreferences.max")
	}
	return nil
}

// validateLocation accepts [longitude, latitude] coordinates or none.
func validateLocation(loc profile.Location) error {
	switch len(loc.Coordinates) {
	case 0:
		if loc.City == "" && loc.Address == "" {
			return invalid("location requires coordinates, a city or an address")
		}
		return nil
	case 2:
	default:
		return invalid("coordinates must be [longitude, latitude]")
	}

	lon, lat := loc.Coordinates[0], loc.Coordinates[1]
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return invalid("coordinates are out of range")
	}
	return nil
}
