// Package models defines the client-side user profile held by the session
// store and persisted between runs.
package models

import (
	"errors"
	"net/url"
	"slices"
)

var (
	ErrMissingID    = errors.New("user id is required")
	ErrMissingEmail = errors.New("user email is required")
)

type Location struct {
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type AgePreferences struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// User is the authenticated member's profile. Field names follow the Auth
// API payload so a stored record can be handed back to the API unchanged.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	Phone          string          `json:"phone,omitempty"`
	DOB            string          `json:"dob,omitempty"`
	Gender         Gender          `json:"gender,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Interests      []string        `json:"interests,omitempty"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	Avatar         string          `json:"avatar,omitempty"`
	Location       *Location       `json:"location,omitempty"`
	AgePreferences *AgePreferences `json:"agePreferences,omitempty"`
	SocialLinks    *SocialLinks    `json:"socialLinks,omitempty"`

	Privacy            Privacy            `json:"privacy,omitempty"`
	LookingFor         LookingFor         `json:"lookingFor,omitempty"`
	Height             *float64           `json:"height,omitempty"`
	Occupation         string             `json:"occupation,omitempty"`
	Education          Education          `json:"education,omitempty"`
	Smoking            Smoking            `json:"smoking,omitempty"`
	Drinking           Drinking           `json:"drinking,omitempty"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus,omitempty"`
	Children           Children           `json:"children,omitempty"`
	Religion           string             `json:"religion,omitempty"`
	Languages          []string           `json:"languages,omitempty"`
	Subscription       Subscription       `json:"subscription,omitempty"`

	IsActive            *bool  `json:"isActive,omitempty"`
	ProfileCompleteness *int   `json:"profileCompleteness,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
	LastActive          string `json:"lastActive,omitempty"`
}

// Validate reports whether u can represent a signed-in member.
func (u *User) Validate() error {
	if u == nil || u.ID == "" {
		return ErrMissingID
	}
	if u.Email == "" {
		return ErrMissingEmail
	}
	return nil
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Clone returns a deep copy of u. Nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Interests = slices.Clone(u.Interests)
	c.Languages = slices.Clone(u.Languages)
	if u.Location != nil {
		l := *u.Location
		l.Coordinates = slices.Clone(u.Location.Coordinates)
		c.Location = &l
	}
	if u.AgePreferences != nil {
		c.AgePreferences = &AgePreferences{
			Min: clonePtr(u.AgePreferences.Min),
			Max: clonePtr(u.AgePreferences.Max),
		}
	}
	if u.SocialLinks != nil {
		s := *u.SocialLinks
		c.SocialLinks = &s
	}
	c.Height = clonePtr(u.Height)
	c.IsActive = clonePtr(u.IsActive)
	c.ProfileCompleteness = clonePtr(u.ProfileCompleteness)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AvatarURL is the placeholder avatar used when the API returns none.
func AvatarURL(email string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(email)
}
