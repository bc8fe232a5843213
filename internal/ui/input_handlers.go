package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/imagefeed/internal/auth"
	"github.com/five82/imagefeed/internal/feed"
	"github.com/five82/imagefeed/internal/prefs"
	"github.com/five82/imagefeed/internal/profile"
	"github.com/five82/imagefeed/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow the next key.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}

	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
			m.log.Warn().Err(err).Msg("save preferences failed")
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewFeed):
		m.currentView = ViewFeed
		return m, nil

	case key.Matches(msg, m.keys.ViewProfile):
		m.currentView = ViewProfile
		m.refreshSnapshot()
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		m.logFollow = true
		return m, m.refreshLogs()
	}

	switch m.currentView {
	case ViewFeed:
		return m.handleFeedKey(msg)
	case ViewImage:
		return m.handleImageKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.CopyURL):
		return m, copyCmd(m.clipboard, "sign-in link", m.authURL)

	case key.Matches(msg, m.keys.Submit):
		if m.exchanging || m.auth == nil {
			return m, nil
		}
		code, ok := auth.CodeFromInput(m.loginInput.Value())
		if !ok {
			m.status = "Paste the code shown after approving access, or the full redirect URL."
			return m, nil
		}
		m.exchanging = true
		m.status = ""
		return m, exchangeCmd(m.ctx, m.auth, code)
	}

	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		return m, m.moveSelection(m.selectedRow + 1)
	case key.Matches(msg, m.keys.Up):
		return m, m.moveSelection(m.selectedRow - 1)
	case key.Matches(msg, m.keys.Top):
		return m, m.moveSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		return m, m.moveSelection(len(m.items) - 1)
	case key.Matches(msg, m.keys.PageDown):
		return m, m.moveSelection(m.selectedRow + m.feedRows())
	case key.Matches(msg, m.keys.PageUp):
		return m, m.moveSelection(m.selectedRow - m.feedRows())

	case key.Matches(msg, m.keys.Open):
		if item, ok := m.selectedItem(); ok {
			m.selectedID = item.ID
			m.currentView = ViewImage
		}
		return m, nil

	case key.Matches(msg, m.keys.Like):
		if item, ok := m.selectedItem(); ok {
			return m, setLikeCmd(m.ctx, m.feed, item.ID, !item.IsLiked)
		}
		return m, nil

	case key.Matches(msg, m.keys.Share):
		if item, ok := m.selectedItem(); ok {
			return m, copyCmd(m.clipboard, "image link", item.FullURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m, m.fetchPage()
	}
	return m, nil
}

func (m Model) handleImageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.feedItem(m.selectedID)
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewFeed
		return m, nil
	case !ok:
		return m, nil
	case key.Matches(msg, m.keys.Like):
		return m, setLikeCmd(m.ctx, m.feed, item.ID, !item.IsLiked)
	case key.Matches(msg, m.keys.Share):
		return m, copyCmd(m.clipboard, "image link", item.FullURL)
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewFeed
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		return m, logoutCmd(m.logout)
	}
	return m, nil
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewFeed
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logFollow = m.logViewport.AtBottom()
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logFollow = false
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.HalfPageDown()
		m.logFollow = m.logViewport.AtBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.HalfPageUp()
		m.logFollow = false
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logFollow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logFollow = true
	}
	return m, nil
}

// moveSelection selects row and, when it is the last loaded row, asks for the
// next page.
func (m *Model) moveSelection(row int) tea.Cmd {
	if len(m.items) == 0 {
		return m.fetchPage()
	}
	m.selectedRow = clamp(row, 0, len(m.items)-1)
	m.ensureVisible()
	if m.selectedRow == len(m.items)-1 {
		return m.fetchPage()
	}
	return nil
}

// fetchPage starts loading the next page unless one is already loading.
func (m *Model) fetchPage() tea.Cmd {
	if m.loading || m.feed == nil {
		return nil
	}
	m.loading = true
	m.pageErr = nil
	return fetchPageCmd(m.ctx, m.feed)
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if m.staleFetch {
		m.staleFetch = false
		if m.signedIn() && m.currentView != ViewLogin {
			return m, m.fetchPage()
		}
		return m, nil
	}
	switch {
	case msg.err == nil:
		m.pageErr = nil
		m.syncItems()
	case errors.Is(msg.err, feed.ErrInFlight), errors.Is(msg.err, feed.ErrReset):
	default:
		m.pageErr = msg.err
	}
	return m, nil
}

func (m Model) handleLikeDone(msg likeDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.syncItems()
	case errors.Is(msg.err, feed.ErrInFlight):
		m.status = "Still saving the previous like."
	default:
		m.alert = "Could not update the like: " + msg.err.Error()
	}
	return m, nil
}

func (m Model) handleExchangeDone(msg exchangeDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, auth.ErrSuperseded) {
		return m, nil
	}
	m.exchanging = false
	if msg.err != nil {
		m.alert = "Could not sign in: " + msg.err.Error()
		return m, nil
	}

	m.loginInput.Reset()
	m.loginInput.Blur()
	m.currentView = ViewFeed
	cmds := []tea.Cmd{m.fetchPage()}
	if token, ok := m.currentToken(); ok && m.profile != nil {
		cmds = append(cmds, fetchProfileCmd(m.ctx, m.profile, token))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, profile.ErrSuperseded) {
		return m, nil
	}
	m.refreshSnapshot()
	if msg.err != nil {
		m.alert = "Could not load your profile: " + msg.err.Error()
		return m, nil
	}
	token, ok := m.currentToken()
	if !ok {
		return m, nil
	}
	return m, fetchAvatarCmd(m.ctx, m.profile, token, msg.profile.Username)
}

func (m Model) handleLoggedOut(msg loggedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.alert = "Logout incomplete: " + msg.err.Error()
	}
	m.items = nil
	m.selectedRow = 0
	m.feedOffset = 0
	m.selectedID = ""
	m.pageErr = nil
	m.staleFetch = m.loading
	m.snapshot = state.Snapshot{}
	m.refreshSnapshot()
	m.enterLogin()
	return m, textinput.Blink
}

func (m *Model) enterLogin() {
	m.currentView = ViewLogin
	m.exchanging = false
	if m.auth != nil {
		m.authURL = m.auth.AuthorizeURL()
	}
	m.loginInput.Reset()
	m.loginInput.Focus()
}

func (m Model) currentToken() (string, bool) {
	if m.tokens == nil {
		return "", false
	}
	return m.tokens.CurrentToken()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
