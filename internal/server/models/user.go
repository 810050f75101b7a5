// Package models defines the Auth API's stored member record.
package models

import (
	"time"

	profile "github.com/dmitrijs2005/soulara/internal/client/models"
)

// User is a member as stored. Profile holds every public field; its ID,
// Email and IsActive are overwritten from the columns when it is shown.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Profile      profile.User
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the profile the API returns, with profile completeness filled in.
func (u *User) Public() *profile.User {
	p := u.Profile.Clone()
	p.ID = u.ID
	p.Email = u.Email
	active := u.IsActive
	p.IsActive = &active
	if !u.CreatedAt.IsZero() {
		p.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	c := Completeness(p)
	p.ProfileCompleteness = &c
	return p
}

// completenessChecks are the profile fields that count towards
// completeness, each weighing the same.
var completenessChecks = []func(p *profile.User) bool{
	func(p *profile.User) bool { return p.FirstName != "" },
	func(p *profile.User) bool { return p.LastName != "" },
	func(p *profile.User) bool { return p.Email != "" },
	func(p *profile.User) bool { return p.Phone != "" },
	func(p *profile.User) bool { return p.DOB != "" },
	func(p *profile.User) bool { return p.Gender != "" },
	func(p *profile.User) bool { return p.Bio != "" },
	func(p *profile.User) bool { return len(p.Interests) > 0 },
	func(p *profile.User) bool { return p.ProfilePicture != "" },
	func(p *profile.User) bool {
		return p.Location != nil && (p.Location.City != "" || len(p.Location.Coordinates) == 2)
	},
	func(p *profile.User) bool { return p.LookingFor != "" },
	func(p *profile.User) bool { return p.Occupation != "" },
	func(p *profile.User) bool { return p.Education != "" },
	func(p *profile.User) bool { return len(p.Languages) > 0 },
	func(p *profile.User) bool { return p.Height != nil },
}

// Completeness returns the share of filled profile fields, 0-100.
func Completeness(p *profile.User) int {
	if p == nil {
		return 0
	}
	filled := 0
	for _, check := range completenessChecks {
		if check(p) {
			filled++
		}
	}
	return filled * 100 / len(completenessChecks)
}
