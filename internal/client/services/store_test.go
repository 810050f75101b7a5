package services

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: "u1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
}

func TestReduce_Transitions(t *testing.T) {
	authed := State{User: testUser(), IsAuthenticated: true}
	bio := "hello"

	tests := []struct {
		name   string
		from   State
		action Action
		want   State
	}{
		{
			name:   "login start clears error and sets loading",
			from:   State{Error: "old"},
			action: LoginStart{},
			want:   State{Loading: true},
		},
		{
			name:   "login success authenticates",
			from:   State{Loading: true, Error: "x"},
			action: LoginSuccess{User: testUser()},
			want:   State{User: testUser(), IsAuthenticated: true},
		},
		{
			name:   "login success without user is ignored",
			from:   State{Loading: true},
			action: LoginSuccess{},
			want:   State{Loading: true},
		},
		{
			name:   "login failure from signed out",
			from:   State{Loading: true},
			action: LoginFailure{Message: "Invalid credentials"},
			want:   State{Error: "Invalid credentials"},
		},
		{
			name:   "login failure keeps an existing user",
			from:   State{User: testUser(), IsAuthenticated: true, Loading: true},
			action: LoginFailure{Message: "nope"},
			want:   State{User: testUser(), IsAuthenticated: true, Error: "nope"},
		},
		{
			name:   "logout resets everything",
			from:   State{User: testUser(), IsAuthenticated: true, Loading: true, Error: "e"},
			action: Logout{},
			want:   State{},
		},
		{
			name:   "update profile merges into user",
			from:   authed,
			action: UpdateProfile{Patch: models.UserPatch{Bio: &bio}},
			want:   State{User: testUser().Apply(models.UserPatch{Bio: &bio}), IsAuthenticated: true},
		},
		{
			name:   "update profile without user is a no-op",
			from:   State{},
			action: UpdateProfile{Patch: models.UserPatch{Bio: &bio}},
			want:   State{},
		},
		{
			name:   "clear error",
			from:   State{User: testUser(), IsAuthenticated: true, Error: "e"},
			action: ClearError{},
			want:   State{User: testUser(), IsAuthenticated: true},
		},
		{
			name:   "init complete clears loading only",
			from:   State{Loading: true, Error: "e"},
			action: InitComplete{},
			want:   State{Error: "e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.from, tt.action))
		})
	}
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	from := State{User: testUser(), IsAuthenticated: true}
	bio := "changed"
	_ = Reduce(from, UpdateProfile{Patch: models.UserPatch{Bio: &bio}})
	assert.Empty(t, from.User.Bio)
}

func randomAction(r *rand.Rand) Action {
	bio := "b"
	switch r.Intn(8) {
	case 0:
		return LoginStart{}
	case 1:
		return LoginSuccess{User: testUser()}
	case 2:
		return LoginSuccess{}
	case 3:
		return LoginFailure{Message: "boom"}
	case 4:
		return Logout{}
	case 5:
		return UpdateProfile{Patch: models.UserPatch{Bio: &bio}}
	case 6:
		return ClearError{}
	default:
		return InitComplete{}
	}
}

func TestReduce_AuthenticatedImpliesUser(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for run := 0; run < 500; run++ {
		s := InitialState()
		for step := 0; step < 50; step++ {
			a := randomAction(r)
			s = Reduce(s, a)
			if s.IsAuthenticated {
				require.NotNil(t, s.User, "run %d step %d after %T", run, step, a)
			}
		}
	}
}

func TestStore_InitialState(t *testing.T) {
	s := NewStore()
	assert.Equal(t, State{Loading: true}, s.State())
}

func TestStore_StateIsACopy(t *testing.T) {
	s := NewStore()
	s.Dispatch(LoginSuccess{User: testUser()})

	st := s.State()
	st.User.FirstName = "Mallory"

	assert.Equal(t, "Jane", s.State().User.FirstName)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.Dispatch(LoginStart{})
	s.Dispatch(LoginFailure{Message: "x"})
	unsubscribe()
	s.Dispatch(ClearError{})

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.Equal(t, "x", seen[1].Error)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Dispatch(LoginSuccess{User: testUser()})
			} else {
				s.Dispatch(Logout{})
			}
		}(i)
	}
	wg.Wait()

	st := s.State()
	if st.IsAuthenticated {
		assert.NotNil(t, st.User)
	}
}
