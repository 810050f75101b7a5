package models

// UserPatch is a partial profile update. A nil field is left unchanged.
// Nested objects are replaced as a whole, never merged key by key.
type UserPatch struct {
	FirstName          *string             `json:"firstName,omitempty"`
	LastName           *string             `json:"lastName,omitempty"`
	Email              *string             `json:"email,omitempty"`
	Phone              *string             `json:"phone,omitempty"`
	DOB                *string             `json:"dob,omitempty"`
	Gender             *Gender             `json:"gender,omitempty"`
	Bio                *string             `json:"bio,omitempty"`
	Interests          []string            `json:"interests,omitempty"`
	ProfilePicture     *string             `json:"profilePicture,omitempty"`
	Avatar             *string             `json:"avatar,omitempty"`
	Location           *Location           `json:"location,omitempty"`
	AgePreferences     *AgePreferences     `json:"agePreferences,omitempty"`
	SocialLinks        *SocialLinks        `json:"socialLinks,omitempty"`
	Privacy            *Privacy            `json:"privacy,omitempty"`
	LookingFor         *LookingFor         `json:"lookingFor,omitempty"`
	Height             *float64            `json:"height,omitempty"`
	Occupation         *string             `json:"occupation,omitempty"`
	Education          *Education          `json:"education,omitempty"`
	Smoking            *Smoking            `json:"smoking,omitempty"`
	Drinking           *Drinking           `json:"drinking,omitempty"`
	RelationshipStatus *RelationshipStatus `json:"relationshipStatus,omitempty"`
	Children           *Children           `json:"children,omitempty"`
	Religion           *string             `json:"religion,omitempty"`
	Languages          []string            `json:"languages,omitempty"`
	Subscription       *Subscription       `json:"subscription,omitempty"`

	// ProfileCompleteness is computed by the server and never sent.
	ProfileCompleteness *int `json:"-"`
}

// Apply returns a copy of u with every non-nil field of p written over it.
// The receiver is not modified.
func (u *User) Apply(p UserPatch) *User {
	c := u.Clone()
	if c == nil {
		return nil
	}

	set(&c.FirstName, p.FirstName)
	set(&c.LastName, p.LastName)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.DOB, p.DOB)
	set(&c.Gender, p.Gender)
	set(&c.Bio, p.Bio)
	set(&c.ProfilePicture, p.ProfilePicture)
	set(&c.Avatar, p.Avatar)
	set(&c.Privacy, p.Privacy)
	set(&c.LookingFor, p.LookingFor)
	set(&c.Occupation, p.Occupation)
	set(&c.Education, p.Education)
	set(&c.Smoking, p.Smoking)
	set(&c.Drinking, p.Drinking)
	set(&c.RelationshipStatus, p.RelationshipStatus)
	set(&c.Children, p.Children)
	set(&c.Religion, p.Religion)
	set(&c.Subscription, p.Subscription)

	if p.Interests != nil {
		c.Interests = append([]string(nil), p.Interests...)
	}
	if p.Languages != nil {
		c.Languages = append([]string(nil), p.Languages...)
	}
	if p.Height != nil {
		c.Height = clonePtr(p.Height)
	}
	if p.ProfileCompleteness != nil {
		c.ProfileCompleteness = clonePtr(p.ProfileCompleteness)
	}
	if p.Location != nil {
		c.Location = (&User{Location: p.Location}).Clone().Location
	}
	if p.AgePreferences != nil {
		c.AgePreferences = (&User{AgePreferences: p.AgePreferences}).Clone().AgePreferences
	}
	if p.SocialLinks != nil {
		s := *p.SocialLinks
		c.SocialLinks = &s
	}
	return c
}

// IsEmpty reports whether p changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.DOB == nil && p.Gender == nil && p.Bio == nil && p.Interests == nil &&
		p.ProfilePicture == nil && p.Avatar == nil && p.Location == nil &&
		p.AgePreferences == nil && p.SocialLinks == nil && p.Privacy == nil &&
		p.LookingFor == nil && p.Height == nil && p.Occupation == nil &&
		p.Education == nil && p.Smoking == nil && p.Drinking == nil &&
		p.RelationshipStatus == nil && p.Children == nil && p.Religion == nil &&
		p.Languages == nil && p.Subscription == nil && p.ProfileCompleteness == nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
