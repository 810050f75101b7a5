// Package services contains the client's session logic: the reducer-driven
// session store and the authentication service that drives it.
package services

import (
	"sync"

	"github.com/dmitrijs2005/soulara/internal/client/models"
)

// State is the session as seen by the UI. An empty Error means no error.
// IsAuthenticated implies User != nil.
type State struct {
	User            *models.User
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// InitialState is the state before the stored session has been restored.
func InitialState() State {
	return State{Loading: true}
}

func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}

type Action interface {
	action()
}

type (
	LoginStart    struct{}
	LoginSuccess  struct{ User *models.User }
	LoginFailure  struct{ Message string }
	Logout        struct{}
	UpdateProfile struct{ Patch models.UserPatch }
	ClearError    struct{}
	InitComplete  struct{}
)

func (LoginStart) action()    {}
func (LoginSuccess) action()  {}
func (LoginFailure) action()  {}
func (Logout) action()        {}
func (UpdateProfile) action() {}
func (ClearError) action()    {}
func (InitComplete) action()  {}

// Reduce returns the state that follows s after a. It never modifies s.
// LoginSuccess without a user is ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoginStart:
		s.Loading = true
		s.Error = ""
	case LoginSuccess:
		if a.User == nil {
			return s
		}
		s.User = a.User.Clone()
		s.IsAuthenticated = true
		s.Loading = false
		s.Error = ""
	case LoginFailure:
		s.Loading = false
		s.Error = a.Message
	case Logout:
		s.User = nil
		s.IsAuthenticated = false
		s.Loading = false
		s.Error = ""
	case UpdateProfile:
		if s.User != nil {
			s.User = s.User.Apply(a.Patch)
		}
	case ClearError:
		s.Error = ""
	case InitComplete:
		s.Loading = false
	}
	return s
}

// Store holds the session state. Dispatches are applied one at a time in
// call order and subscribers are notified after each of them.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewStore() *Store {
	return &Store{state: InitialState(), subs: make(map[int]func(State))}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	for _, fn := range s.subs {
		fn(s.state.clone())
	}
	return s.state.clone()
}

// Subscribe registers fn to be called with every new state. Subscribers run
// while the store is locked and must not dispatch.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
