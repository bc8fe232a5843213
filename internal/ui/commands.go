package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/imagefeed/internal/logtail"
	"github.com/five82/imagefeed/internal/state"
)

// Messages

type tickMsg time.Time

type feedChangedMsg struct{}

type avatarChangedMsg struct{}

type pageLoadedMsg struct{ err error }

type likeDoneMsg struct {
	id  string
	err error
}

type exchangeDoneMsg struct{ err error }

type profileLoadedMsg struct {
	profile state.Profile
	err     error
}

type avatarLoadedMsg struct{ err error }

type loggedOutMsg struct{ err error }

type logTailMsg struct {
	lines []string
	err   error
}

type clipboardMsg struct {
	what string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForSignal blocks until ch fires, then delivers msg. The receiver must
// re-issue the command to keep listening.
func waitForSignal(ctx context.Context, ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func fetchPageCmd(ctx context.Context, src FeedSource) tea.Cmd {
	return func() tea.Msg {
		_, err := src.FetchNextPage(ctx)
		return pageLoadedMsg{err: err}
	}
}

func setLikeCmd(ctx context.Context, src FeedSource, id string, liked bool) tea.Cmd {
	return func() tea.Msg {
		return likeDoneMsg{id: id, err: src.SetLike(ctx, id, liked)}
	}
}

func exchangeCmd(ctx context.Context, auth Authenticator, code string) tea.Cmd {
	return func() tea.Msg {
		_, err := auth.Exchange(ctx, code)
		return exchangeDoneMsg{err: err}
	}
}

func fetchProfileCmd(ctx context.Context, src ProfileSource, token string) tea.Cmd {
	return func() tea.Msg {
		p, err := src.FetchProfile(ctx, token)
		return profileLoadedMsg{profile: p, err: err}
	}
}

func fetchAvatarCmd(ctx context.Context, src ProfileSource, token, username string) tea.Cmd {
	return func() tea.Msg {
		_, err := src.FetchAvatarURL(ctx, token, username)
		return avatarLoadedMsg{err: err}
	}
}

func logoutCmd(logout func() error) tea.Cmd {
	return func() tea.Msg {
		if logout == nil {
			return loggedOutMsg{}
		}
		return loggedOutMsg{err: logout()}
	}
}

func readLogCmd(path string, maxLines int) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, maxLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func copyCmd(write func(string) error, what, value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{what: what, err: write(value)}
	}
}
