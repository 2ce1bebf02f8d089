package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/coalcarbon/internal/auth"
)

// Messages shown by the login form.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgSigningIn          = "Signing in..."
)

const (
	loginInputWidth     = 30
	loginInputCharLimit = 64
)

// loginResultMsg carries the outcome of Session.Login.
type loginResultMsg struct {
	err error
}

// LoginModel is a username/password form that signs in through an
// auth.Session. It quits once the session is authenticated or the user
// cancels.
type LoginModel struct {
	ctx     context.Context
	session *auth.Session

	inputs []textinput.Model
	focus  int

	submitting bool
	errText    string
	done       bool
	cancelled  bool
}

// NewLoginModel returns a form bound to session.
func NewLoginModel(ctx context.Context, session *auth.Session) *LoginModel {
	username := textinput.New()
	username.Placeholder = "Enter username"
	username.Prompt = "Username: "
	username.CharLimit = loginInputCharLimit
	username.Width = loginInputWidth
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Enter password"
	password.Prompt = "Password: "
	password.CharLimit = loginInputCharLimit
	password.Width = loginInputWidth
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginModel{
		ctx:     ctx,
		session: session,
		inputs:  []textinput.Model{username, password},
	}
}

// Authenticated reports whether the form ended with a successful login.
func (m *LoginModel) Authenticated() bool {
	return m.done && !m.cancelled
}

// Cancelled reports whether the user left the form without signing in.
func (m *LoginModel) Cancelled() bool {
	return m.cancelled
}

// ErrorText returns the message currently shown under the form.
func (m *LoginModel) ErrorText() string {
	return m.errText
}

// Init implements tea.Model.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		switch msg.Type { //nolint:exhaustive // Only form navigation keys.
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			if !m.submitting {
				m.setFocus((m.focus + 1) % len(m.inputs))
			}
			return m, nil
		case tea.KeyEnter:
			if m.submitting {
				return m, nil
			}
			if m.focus == 0 {
				m.setFocus(1)
				return m, nil
			}
			return m, m.submit()
		}
	}

	if m.submitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit clears the error and starts the login in a command.
func (m *LoginModel) submit() tea.Cmd {
	m.errText = ""
	m.submitting = true

	ctx := m.ctx
	session := m.session
	username := m.inputs[0].Value()
	password := m.inputs[1].Value()
	return func() tea.Msg {
		return loginResultMsg{err: session.Login(ctx, username, password)}
	}
}

func (m *LoginModel) handleResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	switch {
	case msg.err == nil:
		m.done = true
		return m, tea.Quit
	case errors.Is(msg.err, auth.ErrAuthentication):
		m.errText = MsgInvalidCredentials
	default:
		m.errText = msg.err.Error()
	}
	return m, nil
}

// View implements tea.Model.
func (m *LoginModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Welcome Back"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("Sign in to access your carbon footprint dashboard"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(WarningStyle.Render(MsgSigningIn))
	case m.errText != "":
		b.WriteString(CriticalStyle.Render(m.errText))
	default:
		b.WriteString(SubtleStyle.Render("enter: next/sign in • tab: switch field • esc: cancel"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(BoxStyle.Render(b.String()))
}
