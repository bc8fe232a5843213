package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/imagefeed/internal/feed"
	"github.com/five82/imagefeed/internal/observer"
	"github.com/five82/imagefeed/internal/prefs"
	"github.com/five82/imagefeed/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewFeed
	ViewImage
	ViewProfile
	ViewLogs
)

// FeedSource is the part of feed.Engine the UI drives.
type FeedSource interface {
	FetchNextPage(ctx context.Context) ([]feed.Item, error)
	SetLike(ctx context.Context, id string, liked bool) error
	Items() []feed.Item
	Item(id string) (feed.Item, bool)
	Subscribe(fn func()) *observer.Subscription
	Unsubscribe(sub *observer.Subscription)
}

// Authenticator runs the sign-in flow.
type Authenticator interface {
	AuthorizeURL() string
	Exchange(ctx context.Context, code string) (string, error)
}

// ProfileSource loads and exposes the signed-in user's profile.
type ProfileSource interface {
	FetchProfile(ctx context.Context, token string) (state.Profile, error)
	FetchAvatarURL(ctx context.Context, token, username string) (string, error)
	Snapshot() state.Snapshot
	SubscribeAvatar(fn func()) *observer.Subscription
	UnsubscribeAvatar(sub *observer.Subscription)
}

// TokenSource reports the current bearer token.
type TokenSource interface {
	CurrentToken() (string, bool)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Feed      FeedSource
	Auth      Authenticator
	Profile   ProfileSource
	Tokens    TokenSource
	Logout    func() error
	LogPath   string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    zerolog.Logger

	// StartupErr is shown as an alert when the UI opens.
	StartupErr error

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	feed      FeedSource
	auth      Authenticator
	profile   ProfileSource
	tokens    TokenSource
	logout    func() error
	clipboard func(string) error
	log       zerolog.Logger
	logPath   string
	prefsPath string
	prefs     prefs.Prefs

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spinner     spinner.Model
	showHelp    bool
	alert       string
	status      string

	// Feed state
	items       []feed.Item
	selectedRow int
	feedOffset  int
	loading     bool
	pageErr     error

	// staleFetch is set when a logout happens with a page fetch outstanding.
	// Its result belongs to the old session; the next sign-in reloads once it
	// arrives.
	staleFetch bool
	selectedID  string

	// Login state
	authURL    string
	loginInput textinput.Model
	exchanging bool

	// Profile state
	snapshot state.Snapshot

	// Log state
	logViewport viewport.Model
	logFollow   bool
	logErr      error

	// Change notifications. The model holds the subscriptions so the
	// registries keep delivering.
	feedChanges   chan struct{}
	avatarChanges chan struct{}
	feedSub       *observer.Subscription
	avatarSub     *observer.Subscription
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = "authorization code or redirect URL"
	input.CharLimit = 512
	input.Prompt = "› "

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		feed:          opts.Feed,
		auth:          opts.Auth,
		profile:       opts.Profile,
		tokens:        opts.Tokens,
		logout:        opts.Logout,
		clipboard:     copyFn,
		log:           opts.Logger.With().Str("component", "ui").Logger(),
		logPath:       opts.LogPath,
		prefsPath:     prefsPath,
		prefs:         opts.Prefs,
		keys:          defaultKeyMap(),
		theme:         GetTheme(opts.Prefs.Theme),
		spinner:       spin,
		loginInput:    input,
		logFollow:     true,
		feedChanges:   make(chan struct{}, 1),
		avatarChanges: make(chan struct{}, 1),
	}
	if opts.StartupErr != nil {
		m.alert = "Could not load your profile: " + opts.StartupErr.Error()
	}

	if m.feed != nil {
		m.feedSub = m.feed.Subscribe(signal(m.feedChanges))
		m.items = m.feed.Items()
	}
	if m.profile != nil {
		m.avatarSub = m.profile.SubscribeAvatar(signal(m.avatarChanges))
		m.snapshot = m.profile.Snapshot()
	}

	if m.signedIn() {
		m.currentView = ViewFeed
		m.loading = m.feed != nil && len(m.items) == 0
	} else {
		m.enterLogin()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(logRefreshInterval),
		waitForSignal(m.ctx, m.feedChanges, feedChangedMsg{}),
		waitForSignal(m.ctx, m.avatarChanges, avatarChangedMsg{}),
	}
	if m.currentView == ViewLogin {
		cmds = append(cmds, textinput.Blink)
	}
	if m.loading {
		cmds = append(cmds, fetchPageCmd(m.ctx, m.feed))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		var cmds []tea.Cmd
		if m.currentView == ViewLogs && m.logFollow {
			cmds = append(cmds, m.refreshLogs())
		}
		cmds = append(cmds, tickCmd(logRefreshInterval))
		return m, tea.Batch(cmds...)

	case feedChangedMsg:
		m.syncItems()
		return m, waitForSignal(m.ctx, m.feedChanges, feedChangedMsg{})

	case avatarChangedMsg:
		m.refreshSnapshot()
		return m, waitForSignal(m.ctx, m.avatarChanges, avatarChangedMsg{})

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case likeDoneMsg:
		return m.handleLikeDone(msg)

	case exchangeDoneMsg:
		return m.handleExchangeDone(msg)

	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)

	case avatarLoadedMsg:
		m.refreshSnapshot()
		return m, nil

	case loggedOutMsg:
		return m.handleLoggedOut(msg)

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("clipboard write failed")
			m.status = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.status = "Copied " + msg.what
		}
		return m, nil
	}

	if m.currentView == ViewLogin {
		var cmd tea.Cmd
		m.loginInput, cmd = m.loginInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.alert != "" {
		return m.renderAlert()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewImage:
		return m.renderImage()
	case ViewProfile:
		return m.renderProfile()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderFeed()
	}
}

// Close drops the model's change subscriptions.
func (m Model) Close() {
	if m.feed != nil && m.feedSub != nil {
		m.feed.Unsubscribe(m.feedSub)
	}
	if m.profile != nil && m.avatarSub != nil {
		m.profile.UnsubscribeAvatar(m.avatarSub)
	}
}

func (m Model) signedIn() bool {
	if m.tokens == nil {
		return false
	}
	_, ok := m.tokens.CurrentToken()
	return ok
}

func (m *Model) refreshSnapshot() {
	if m.profile != nil {
		m.snapshot = m.profile.Snapshot()
	}
}

// signal returns an observer callback that wakes a waitForSignal command.
// Notifications coalesce while one is pending.
func signal(ch chan struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	ctx := m.ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

const logRefreshInterval = time.Second
