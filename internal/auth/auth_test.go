package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type countingObserver struct {
	ok, failed int
}

func (c *countingObserver) ObserveLogin(success bool) {
	if success {
		c.ok++
	} else {
		c.failed++
	}
}

func newTestSession(store Store, opts ...SessionOption) *Session {
	return NewSession(DefaultVerifier(), store, append([]SessionOption{WithLoginDelay(0)}, opts...)...)
}

func TestStaticVerifier(t *testing.T) {
	v := DefaultVerifier()

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"demo pair", "sneha", "sneha@2208", true},
		{"wrong password", "sneha", "sneha@2209", false},
		{"wrong user", "admin", "sneha@2208", false},
		{"case sensitive", "Sneha", "sneha@2208", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Verify(tt.username, tt.password))
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pit-7"), bcrypt.MinCost)
	require.NoError(t, err)

	v := BcryptVerifier{Username: "shiftlead", Hash: hash}
	assert.True(t, v.Verify("shiftlead", "pit-7"))
	assert.False(t, v.Verify("shiftlead", "pit-8"))
	assert.False(t, v.Verify("sneha", "pit-7"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, BcryptVerifier{Username: "u", Hash: hash}.Verify("u", "s3cret"))
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier("", "")
	require.NoError(t, err)
	assert.True(t, v.Verify(DemoUsername, DemoPassword))

	_, err = NewVerifier("shiftlead", "")
	require.Error(t, err)

	_, err = NewVerifier("shiftlead", "plaintext")
	require.ErrorContains(t, err, "not a bcrypt hash")

	hash, err := bcrypt.GenerateFromPassword([]byte("pit-7"), bcrypt.MinCost)
	require.NoError(t, err)
	v, err = NewVerifier("shiftlead", string(hash))
	require.NoError(t, err)
	assert.True(t, v.Verify("shiftlead", "pit-7"))
	assert.False(t, v.Verify(DemoUsername, DemoPassword))
}

func TestSession_LoginSuccess(t *testing.T) {
	store := &MemoryStore{}
	obs := &countingObserver{}
	s := newTestSession(store, WithLoginObserver(obs))
	require.False(t, s.IsAuthenticated())

	require.NoError(t, s.Login(context.Background(), "sneha", "sneha@2208"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "sneha", s.User())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "sneha", saved)
	assert.Equal(t, 1, obs.ok)
}

func TestSession_LoginFailureLeavesStateUnchanged(t *testing.T) {
	store := &MemoryStore{}
	obs := &countingObserver{}
	s := newTestSession(store, WithLoginObserver(obs))

	err := s.Login(context.Background(), "sneha", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)
	assert.EqualError(t, err, "invalid username or password")
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.User())
	saved, _ := store.Load()
	assert.Empty(t, saved)

	// A failed attempt while logged in does not log the user out.
	require.NoError(t, s.Login(context.Background(), "sneha", "sneha@2208"))
	require.ErrorIs(t, s.Login(context.Background(), "intruder", "x"), ErrAuthentication)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "sneha", s.User())

	assert.Equal(t, 2, obs.failed)
	assert.Equal(t, 1, obs.ok)
}

func TestSession_LoginDelay(t *testing.T) {
	s := NewSession(DefaultVerifier(), nil, WithLoginDelay(20*time.Millisecond))

	start := time.Now()
	require.NoError(t, s.Login(context.Background(), "sneha", "sneha@2208"))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSession_LoginCancelled(t *testing.T) {
	s := NewSession(DefaultVerifier(), nil, WithLoginDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Login(ctx, "sneha", "sneha@2208")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.IsAuthenticated())
}

func TestSession_LogoutAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.yaml")
	store := FileStore{Path: path}

	s := newTestSession(store)
	require.NoError(t, s.Login(context.Background(), "sneha", "sneha@2208"))

	restored := newTestSession(store)
	require.NoError(t, restored.Restore())
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "sneha", restored.User())

	require.NoError(t, restored.Logout())
	assert.False(t, restored.IsAuthenticated())
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	again := newTestSession(store)
	require.NoError(t, again.Restore())
	assert.False(t, again.IsAuthenticated())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store := FileStore{Path: filepath.Join(dir, "session.yaml")}

	user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, user)

	require.NoError(t, store.Save("sneha"))
	data, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.Equal(t, "carbon-user: sneha\n", string(data))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	require.NoError(t, os.WriteFile(store.Path, []byte("carbon-user: [\n"), 0o600))
	_, err = store.Load()
	assert.ErrorContains(t, err, "parsing session file")
}
