package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/roomsync/internal/client/credentials"
	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/client/strategy"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeProbe struct {
	remote   bool
	checks   int
	rechecks int
	next     *bool
}

func (p *fakeProbe) Check(context.Context) bool {
	p.checks++
	return p.remote
}

func (p *fakeProbe) Recheck(context.Context) bool {
	p.rechecks++
	if p.next != nil {
		p.remote = *p.next
	}
	return p.remote
}

func (p *fakeProbe) Mode() models.Mode {
	if p.remote {
		return models.ModeRemote
	}
	return models.ModeLocal
}

type fakeRemote struct {
	strategy.Strategy

	signInResp models.AuthResponse
	signInErr  error
	signOutErr error
	signOuts   []string
}

func (f *fakeRemote) Mode() models.Mode { return models.ModeRemote }

func (f *fakeRemote) SignIn(context.Context, string, string) (models.AuthResponse, error) {
	return f.signInResp, f.signInErr
}

func (f *fakeRemote) SignUp(context.Context, string, string, string) (models.AuthResponse, error) {
	return f.signInResp, f.signInErr
}

func (f *fakeRemote) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return f.signOutErr
}

type env struct {
	svc    SessionService
	probe  *fakeProbe
	remote *fakeRemote
	kv     *storage.MemoryStore
}

func newEnv(t *testing.T, remoteMode bool) *env {
	t.Helper()
	kv := storage.NewMemoryStore()
	creds := credentials.NewStore(kv)
	p := &fakeProbe{remote: remoteMode}
	r := &fakeRemote{signInResp: models.AuthResponse{User: models.User{ID: "r1", Name: "Remote"}, AccessToken: "jwt"}}
	l := strategy.NewLocal(creds, kv, logging.Discard())
	return &env{
		svc:    NewSessionService(p, r, l, creds, kv, logging.Discard()),
		probe:  p,
		remote: r,
		kv:     kv,
	}
}

// ---- tests ----

func TestSignIn_RemotePersistsSession(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()

	resp, err := e.svc.SignIn(ctx, " 0909 ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)

	sess, err := storage.LoadSession(ctx, e.kv)
	require.NoError(t, err)
	require.True(t, sess.Valid())
	assert.Equal(t, "r1", sess.User.ID)
	assert.Equal(t, "jwt", sess.AccessToken)
}

func TestSignIn_RemoteFailureDoesNotFallBack(t *testing.T) {
	e := newEnv(t, true)
	e.remote.signInErr = &common.RemoteError{Status: 401, Message: "Invalid phone or password", Kind: common.ErrInvalidCredentials}

	_, err := e.svc.SignIn(context.Background(), credentials.DemoPhone, credentials.DemoPassword)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, "Invalid phone or password", common.UserMessage(err))
	assert.Equal(t, 0, e.kv.Len(), "nothing persisted, demo not seeded")
}

func TestSignIn_LocalPersistsSession(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	resp, err := e.svc.SignIn(ctx, credentials.DemoPhone, credentials.DemoPassword)
	require.NoError(t, err)
	assert.True(t, models.IsLocalToken(resp.AccessToken))

	raw, err := e.kv.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	tok, err := e.kv.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.AccessToken, string(tok))
}

func TestSignIn_MissingFields(t *testing.T) {
	e := newEnv(t, false)
	_, err := e.svc.SignIn(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, common.ErrMissingFields)
	_, err = e.svc.SignUp(context.Background(), "", "0123", "pw")
	assert.ErrorIs(t, err, common.ErrMissingFields)
	assert.Equal(t, 0, e.probe.checks, "validation happens before probing")
}

func TestSignUp_LocalRoundTrip(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	up, err := e.svc.SignUp(ctx, "Binh", "0777", "pw")
	require.NoError(t, err)

	in, err := e.svc.SignIn(ctx, "0777", "pw")
	require.NoError(t, err)
	assert.Equal(t, up.User.ID, in.User.ID)

	_, err = e.svc.SignUp(ctx, "Other", "0777", "different")
	assert.ErrorIs(t, err, common.ErrDuplicatePhone)
}

func TestSignOut_RemoteFailureStillClears(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	e.remote.signOutErr = errors.New("network down")

	_, err := e.svc.SignIn(ctx, "0909", "pw")
	require.NoError(t, err)

	e.svc.SignOut(ctx, "jwt")
	assert.Equal(t, []string{"jwt"}, e.remote.signOuts)

	sess, err := storage.LoadSession(ctx, e.kv)
	require.NoError(t, err)
	assert.False(t, sess.Valid())
}

func TestSignOut_SkipsRemoteForLocalTokens(t *testing.T) {
	e := newEnv(t, true)
	e.svc.SignOut(context.Background(), "local-token-u-1")
	e.svc.SignOut(context.Background(), "")
	assert.Empty(t, e.remote.signOuts)
}

func TestSignOut_LocalModeNoRemoteCall(t *testing.T) {
	e := newEnv(t, false)
	e.svc.SignOut(context.Background(), "jwt")
	assert.Empty(t, e.remote.signOuts)
}

func TestModeAndRecheck(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	assert.Equal(t, models.ModeLocal, e.svc.Mode())
	assert.Equal(t, models.ModeLocal, e.svc.Strategy(ctx).Mode())

	up := true
	e.probe.next = &up
	assert.True(t, e.svc.RecheckBackend(ctx))
	assert.Equal(t, models.ModeRemote, e.svc.Mode())
	assert.Equal(t, models.ModeRemote, e.svc.Strategy(ctx).Mode())
	assert.Equal(t, 1, e.probe.rechecks)
}

func TestDemoCredentials(t *testing.T) {
	e := newEnv(t, false)
	c := e.svc.DemoCredentials()
	assert.Equal(t, "0123456789", c.Phone)
	assert.Equal(t, "demo123", c.Password)
}
