package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/imagefeed/internal/feed"
	"github.com/five82/imagefeed/internal/observer"
	"github.com/five82/imagefeed/internal/prefs"
	"github.com/five82/imagefeed/internal/state"
)

type likeCall struct {
	id    string
	liked bool
}

type fakeFeed struct {
	mu       sync.Mutex
	items    []feed.Item
	fetches  int
	fetchErr error
	likes    []likeCall
	reg      observer.Registry
}

func (f *fakeFeed) FetchNextPage(ctx context.Context) ([]feed.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return nil, f.fetchErr
}

func (f *fakeFeed) SetLike(ctx context.Context, id string, liked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes = append(f.likes, likeCall{id, liked})
	return nil
}

func (f *fakeFeed) Items() []feed.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]feed.Item(nil), f.items...)
}

func (f *fakeFeed) Item(id string) (feed.Item, bool) {
	for _, item := range f.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return feed.Item{}, false
}

func (f *fakeFeed) Subscribe(fn func()) *observer.Subscription { return f.reg.Subscribe(fn) }

func (f *fakeFeed) Unsubscribe(sub *observer.Subscription) { f.reg.Unsubscribe(sub) }

type fakeAuth struct {
	codes []string
	err   error
}

func (a *fakeAuth) AuthorizeURL() string { return "https://unsplash.test/oauth/authorize?state=x" }

func (a *fakeAuth) Exchange(ctx context.Context, code string) (string, error) {
	a.codes = append(a.codes, code)
	return "tok", a.err
}

type fakeProfile struct {
	store state.Store
	reg   observer.Registry
}

func (p *fakeProfile) FetchProfile(ctx context.Context, token string) (state.Profile, error) {
	prof := state.Profile{Username: "jdoe", Name: "Jane Doe", LoginName: "@jdoe"}
	p.store.SetProfile(prof, nil)
	return prof, nil
}

func (p *fakeProfile) FetchAvatarURL(ctx context.Context, token, username string) (string, error) {
	p.store.SetAvatar("https://img/"+username, nil)
	return "https://img/" + username, nil
}

func (p *fakeProfile) Snapshot() state.Snapshot { return p.store.Snapshot() }

func (p *fakeProfile) SubscribeAvatar(fn func()) *observer.Subscription { return p.reg.Subscribe(fn) }

func (p *fakeProfile) UnsubscribeAvatar(sub *observer.Subscription) { p.reg.Unsubscribe(sub) }

type staticTokens struct{ token string }

func (t *staticTokens) CurrentToken() (string, bool) { return t.token, t.token != "" }

type fixture struct {
	feed    *fakeFeed
	auth    *fakeAuth
	profile *fakeProfile
	tokens  *staticTokens
	copied  []string
	logouts int
	opts    Options
}

func newFixture(t *testing.T, signedIn bool, list ...feed.Item) *fixture {
	t.Helper()
	f := &fixture{
		feed:    &fakeFeed{items: list},
		auth:    &fakeAuth{},
		profile: &fakeProfile{},
		tokens:  &staticTokens{},
	}
	if signedIn {
		f.tokens.token = "tok"
	}
	f.opts = Options{
		Context:   context.Background(),
		Feed:      f.feed,
		Auth:      f.auth,
		Profile:   f.profile,
		Tokens:    f.tokens,
		Prefs:     prefs.Default(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Logger:    zerolog.Nop(),
		Clipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
		Logout: func() error {
			f.logouts++
			f.tokens.token = ""
			return nil
		},
	}
	return f
}

func (f *fixture) model() Model {
	m := New(f.opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model)
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func items(ids ...string) []feed.Item {
	out := make([]feed.Item, len(ids))
	for i, id := range ids {
		out[i] = feed.Item{ID: id, Width: 400, Height: 300, Description: "photo " + id, FullURL: "https://img/full/" + id}
	}
	return out
}

func TestNew_WithoutTokenOpensLogin(t *testing.T) {
	f := newFixture(t, false)
	m := f.model()

	assert.Equal(t, ViewLogin, m.currentView)
	assert.Equal(t, f.auth.AuthorizeURL(), m.authURL)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Sign in to Unsplash")
}

func TestNew_WithTokenStartsLoadingFirstPage(t *testing.T) {
	f := newFixture(t, true)
	m := f.model()

	assert.Equal(t, ViewFeed, m.currentView)
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading photos")
}

func TestFeed_MovingOntoLastRowFetchesNextPage(t *testing.T) {
	f := newFixture(t, true, items("a", "b", "c")...)
	m := f.model()
	require.False(t, m.loading)

	m, cmd := send(t, m, press("j"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.selectedRow)

	m, cmd = send(t, m, press("j"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	msg := cmd()
	assert.Equal(t, 1, f.feed.fetches)

	// A second move while loading does not start another fetch.
	_, again := send(t, m, press("G"))
	assert.Nil(t, again)

	m, _ = send(t, m, msg)
	assert.False(t, m.loading)
	assert.NoError(t, m.pageErr)
}

func TestFeed_PageErrorsAreRecordedExceptBenignOnes(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()

	m, _ = send(t, m, pageLoadedMsg{err: feed.ErrInFlight})
	assert.NoError(t, m.pageErr)

	m, _ = send(t, m, pageLoadedMsg{err: feed.ErrReset})
	assert.NoError(t, m.pageErr)

	boom := errors.New("status 500")
	m, _ = send(t, m, pageLoadedMsg{err: boom})
	assert.ErrorIs(t, m.pageErr, boom)
	assert.Contains(t, m.View(), "Could not load photos")
}

func TestFeed_SpaceLikesSelectedPhoto(t *testing.T) {
	list := items("a", "b")
	list[0].IsLiked = true
	f := newFixture(t, true, list...)
	m := f.model()

	_, cmd := send(t, m, press(" "))
	require.NotNil(t, cmd)
	msg := cmd()

	require.Len(t, f.feed.likes, 1)
	assert.Equal(t, likeCall{"a", false}, f.feed.likes[0])
	assert.Equal(t, likeDoneMsg{id: "a"}, msg)
}

func TestLikeFailureShowsAlertAndAnyKeyDismisses(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()

	m, _ = send(t, m, likeDoneMsg{id: "a", err: errors.New("status 403")})
	require.NotEmpty(t, m.alert)
	assert.Contains(t, m.View(), "status 403")

	m, _ = send(t, m, press("x"))
	assert.Empty(t, m.alert)
}

func TestImage_ShareCopiesFullURL(t *testing.T) {
	f := newFixture(t, true, items("a", "b")...)
	m := f.model()

	m, _ = send(t, m, press("enter"))
	require.Equal(t, ViewImage, m.currentView)
	assert.Contains(t, m.View(), "https://img/full/a")

	_, cmd := send(t, m, press("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []string{"https://img/full/a"}, f.copied)

	m, _ = send(t, m, msg)
	assert.Equal(t, "Copied image link", m.status)

	m, _ = send(t, m, press("esc"))
	assert.Equal(t, ViewFeed, m.currentView)
}

func TestFeedChange_SyncsItemsAndKeepsSelection(t *testing.T) {
	f := newFixture(t, true, items("a", "b")...)
	m := f.model()
	m, _ = send(t, m, press("j"))
	require.Equal(t, 1, m.selectedRow)

	f.feed.mu.Lock()
	f.feed.items = items("x", "a", "b", "c")
	f.feed.mu.Unlock()

	m, cmd := send(t, m, feedChangedMsg{})
	assert.NotNil(t, cmd, "listener must be re-armed")
	assert.Len(t, m.items, 4)
	assert.Equal(t, 2, m.selectedRow, "selection follows photo b")
}

func TestFeedPublishReachesModelChannel(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()

	f.feed.reg.Publish()
	f.feed.reg.Publish()

	select {
	case <-m.feedChanges:
	case <-time.After(time.Second):
		t.Fatal("subscription did not signal")
	}
	m.Close()
	assert.Equal(t, 0, f.feed.reg.Len())
}

func TestLogin_SubmitExchangesCodeThenLoadsFeedAndProfile(t *testing.T) {
	f := newFixture(t, false)
	m := f.model()

	m.loginInput.SetValue("https://unsplash.com/oauth/authorize/native?code=abc")
	m, cmd := send(t, m, press("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.exchanging)

	msg := cmd()
	assert.Equal(t, []string{"abc"}, f.auth.codes)

	f.tokens.token = "tok"
	m, cmd = send(t, m, msg)
	assert.Equal(t, ViewFeed, m.currentView)
	assert.False(t, m.exchanging)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestLogin_InvalidInputShowsHint(t *testing.T) {
	f := newFixture(t, false)
	m := f.model()

	m.loginInput.SetValue("not a code")
	m, cmd := send(t, m, press("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.exchanging)
	assert.NotEmpty(t, m.status)
	assert.Empty(t, f.auth.codes)
}

func TestLogin_ExchangeFailureAlerts(t *testing.T) {
	f := newFixture(t, false)
	m := f.model()
	m.exchanging = true

	m, _ = send(t, m, exchangeDoneMsg{err: errors.New("invalid_grant")})
	assert.Equal(t, ViewLogin, m.currentView)
	assert.False(t, m.exchanging)
	assert.Contains(t, m.alert, "invalid_grant")
}

func TestProfileLoaded_FetchesAvatar(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()

	prof, err := f.profile.FetchProfile(context.Background(), "tok")
	require.NoError(t, err)

	m, cmd := send(t, m, profileLoadedMsg{profile: prof})
	require.NotNil(t, cmd)
	assert.True(t, m.snapshot.HasProfile)

	m, _ = send(t, m, cmd())
	assert.Equal(t, "https://img/jdoe", m.snapshot.AvatarURL)

	m, _ = send(t, m, press("p"))
	view := m.View()
	assert.Contains(t, view, "@jdoe")
	assert.Contains(t, view, "Jane Doe")
}

func TestProfile_LogoutReturnsToLogin(t *testing.T) {
	f := newFixture(t, true, items("a", "b")...)
	m := f.model()

	m, _ = send(t, m, press("p"))
	require.Equal(t, ViewProfile, m.currentView)

	_, cmd := send(t, m, press("L"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, 1, f.logouts)

	m, _ = send(t, m, msg)
	assert.Equal(t, ViewLogin, m.currentView)
	assert.Empty(t, m.items)
	assert.NotEmpty(t, m.authURL)
}

func TestLogout_WithFetchOutstandingReloadsAfterNextSignIn(t *testing.T) {
	f := newFixture(t, true)
	m := f.model()
	require.True(t, m.loading)

	m, _ = send(t, m, loggedOutMsg{})
	require.Equal(t, ViewLogin, m.currentView)
	assert.True(t, m.loading, "old session's fetch is still running")

	f.tokens.token = "tok"
	m, _ = send(t, m, exchangeDoneMsg{})
	require.Equal(t, ViewFeed, m.currentView)
	assert.True(t, m.loading)

	m, cmd := send(t, m, pageLoadedMsg{err: feed.ErrReset})
	require.NotNil(t, cmd, "first page of the new session is requested")
	assert.True(t, m.loading)
	assert.False(t, m.staleFetch)

	before := f.feed.fetches
	m, _ = send(t, m, cmd())
	assert.Equal(t, before+1, f.feed.fetches)
	assert.False(t, m.loading)
	assert.NoError(t, m.pageErr)

	t.Run("still signed out when the stale page arrives", func(t *testing.T) {
		f := newFixture(t, true)
		m := f.model()
		f.tokens.token = ""
		m, _ = send(t, m, loggedOutMsg{})

		m, cmd := send(t, m, pageLoadedMsg{err: feed.ErrReset})
		assert.Nil(t, cmd)
		assert.False(t, m.loading)
		assert.Equal(t, ViewLogin, m.currentView)
	})
}

func TestCycleTheme_PersistsPreference(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()
	require.Equal(t, "Dracula", m.theme.Name)

	m, _ = send(t, m, press("T"))
	assert.Equal(t, "Slate", m.theme.Name)
	assert.Equal(t, "Slate", prefs.Load(f.opts.PrefsPath).Theme)
}

func TestHelpOverlayListsBindings(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	m := f.model()

	m, _ = send(t, m, press("?"))
	require.True(t, m.showHelp)
	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Log out")

	m, _ = send(t, m, press("j"))
	assert.False(t, m.showHelp)
	assert.Equal(t, 0, m.selectedRow, "closing help swallows the key")
}

func TestLogsView_ShowsTail(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	f.opts.LogPath = filepath.Join(t.TempDir(), "imagefeed.log")
	m := f.model()

	m, cmd := send(t, m, press("l"))
	require.Equal(t, ViewLogs, m.currentView)
	require.NotNil(t, cmd)

	m, _ = send(t, m, logTailMsg{lines: []string{"INFO  [feed] merged page", "ERROR [auth] token exchange failed"}})
	view := m.View()
	assert.Contains(t, view, "merged page")
	assert.True(t, strings.Contains(view, "token exchange failed"))
}

func TestStartupErrorShowsAlert(t *testing.T) {
	f := newFixture(t, true, items("a")...)
	f.opts.StartupErr = errors.New("status 401")
	m := f.model()

	assert.Contains(t, m.alert, "status 401")
}
