// Package guard decides, from a request path and its cookies alone, whether
// a page may be served, or the visitor must be sent to the login page or
// back home.
package guard

import "regexp"

// Class is the access class of a route.
type Class int

const (
	// Public routes are served to everyone.
	Public Class = iota
	// AuthOnly routes (login, signup) make no sense for a signed-in visitor.
	AuthOnly
	// Private routes need a session.
	Private
)

func (c Class) String() string {
	switch c {
	case AuthOnly:
		return "auth-only"
	case Private:
		return "private"
	}
	return "public"
}

// DefaultClass applies to paths no rule matches.
const DefaultClass = Public

type Matcher interface {
	Match(path string) bool
}

// Exact matches one path literally.
type Exact string

func (e Exact) Match(path string) bool { return string(e) == path }

// Pattern matches paths against a regular expression.
type Pattern struct {
	re *regexp.Regexp
}

func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

func (p Pattern) Match(path string) bool { return p.re.MatchString(path) }

func (p Pattern) String() string { return p.re.String() }

type Rule struct {
	Matcher Matcher
	Class   Class
}

// Table is the route classification table, an ordered list of rules.
// Exact rules are checked first, top to bottom; pattern rules only when no
// exact rule matches. The first matching rule wins, so auth-only rules go
// before the rest.
type Table []Rule

// DefaultTable is the product's route table.
func DefaultTable() Table {
	return Table{
		{Exact("/login"), AuthOnly},
		{Exact("/signup"), AuthOnly},

		{Exact("/"), Public},
		{Exact("/about"), Public},
		{Exact("/contact"), Public},

		{Exact("/profile"), Private},
		{Exact("/find-match"), Private},
		{Exact("/admin"), Private},
		{MustPattern(`^/profile/.*$`), Private},
		{MustPattern(`^/dashboard/.*$`), Private},
		{MustPattern(`^/admin/.*$`), Private},
	}
}

// Classify returns the class of the first rule matching path, DefaultClass
// when nothing matches.
func (t Table) Classify(path string) Class {
	for _, exact := range []bool{true, false} {
		for _, r := range t {
			if _, ok := r.Matcher.(Exact); ok != exact {
				continue
			}
			if r.Matcher.Match(path) {
				return r.Class
			}
		}
	}
	return DefaultClass
}
