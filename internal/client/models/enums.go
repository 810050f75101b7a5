package models

// Closed value sets of the profile. The zero value means "not set".

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

type LookingFor string

const (
	LookingForFriendship   LookingFor = "friendship"
	LookingForRelationship LookingFor = "relationship"
	LookingForCasual       LookingFor = "casual"
	LookingForOther        LookingFor = "other"
)

func (l LookingFor) Valid() bool {
	switch l {
	case LookingForFriendship, LookingForRelationship, LookingForCasual, LookingForOther:
		return true
	}
	return false
}

type Education string

const (
	EducationHighSchool Education = "high_school"
	EducationBachelor   Education = "bachelor"
	EducationMaster     Education = "master"
	EducationPhD        Education = "phd"
	EducationOther      Education = "other"
)

func (e Education) Valid() bool {
	switch e {
	case EducationHighSchool, EducationBachelor, EducationMaster, EducationPhD, EducationOther:
		return true
	}
	return false
}

type Smoking string

const (
	SmokingNever          Smoking = "never"
	SmokingSometimes      Smoking = "sometimes"
	SmokingRegularly      Smoking = "regularly"
	SmokingPreferNotToSay Smoking = "prefer_not_to_say"
)

func (s Smoking) Valid() bool {
	switch s {
	case SmokingNever, SmokingSometimes, SmokingRegularly, SmokingPreferNotToSay:
		return true
	}
	return false
}

type Drinking string

const (
	DrinkingNever          Drinking = "never"
	DrinkingSocially       Drinking = "socially"
	DrinkingRegularly      Drinking = "regularly"
	DrinkingPreferNotToSay Drinking = "prefer_not_to_say"
)

func (d Drinking) Valid() bool {
	switch d {
	case DrinkingNever, DrinkingSocially, DrinkingRegularly, DrinkingPreferNotToSay:
		return true
	}
	return false
}

type RelationshipStatus string

const (
	RelationshipSingle   RelationshipStatus = "single"
	RelationshipDivorced RelationshipStatus = "divorced"
	RelationshipWidowed  RelationshipStatus = "widowed"
)

func (r RelationshipStatus) Valid() bool {
	switch r {
	case RelationshipSingle, RelationshipDivorced, RelationshipWidowed:
		return true
	}
	return false
}

type Children string

const (
	ChildrenNone     Children = "none"
	ChildrenHave     Children = "have_children"
	ChildrenWant     Children = "want_children"
	ChildrenDontWant Children = "dont_want_children"
)

func (c Children) Valid() bool {
	switch c {
	case ChildrenNone, ChildrenHave, ChildrenWant, ChildrenDontWant:
		return true
	}
	return false
}

// Subscription is the membership tier, "solara" is the paid one.
type Subscription string

const (
	SubscriptionFree   Subscription = "free"
	SubscriptionSolara Subscription = "solara"
)

func (s Subscription) Valid() bool {
	return s == SubscriptionFree || s == SubscriptionSolara
}

// closed returns v when it belongs to its value set, the zero value otherwise.
func closed[T interface {
	~string
	Valid() bool
}](v T) T {
	if v.Valid() {
		return v
	}
	var zero T
	return zero
}

// Normalize drops enum values outside their closed sets.
func (u *User) Normalize() {
	u.Gender = closed(u.Gender)
	u.Privacy = closed(u.Privacy)
	u.LookingFor = closed(u.LookingFor)
	u.Education = closed(u.Education)
	u.Smoking = closed(u.Smoking)
	u.Drinking = closed(u.Drinking)
	u.RelationshipStatus = closed(u.RelationshipStatus)
	u.Children = closed(u.Children)
	u.Subscription = closed(u.Subscription)
}
