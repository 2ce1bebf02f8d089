package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/logging"
	"github.com/rshade/coalcarbon/internal/tui"
)

// LoginParams holds the flags of the login command.
type LoginParams struct {
	Username      string
	Password      string
	PasswordStdin bool
	Interactive   bool
}

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	var params LoginParams

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to unlock the dashboard",
		Long: `Signs in with the configured credentials (a demo account when none are
configured). The session is saved in the coalcarbon home directory unless
auth.persist is false.

Missing values are prompted for on a terminal. Use --password-stdin in scripts.`,
		Example: `  coalcarbon login
  coalcarbon login --interactive
  echo "$PASSWORD" | coalcarbon login --username ops --password-stdin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeLogin(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&params.Password, "password", "p", "", "Password (prefer the prompt or --password-stdin)")
	cmd.Flags().BoolVar(&params.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVarP(&params.Interactive, "interactive", "i", false, "Use the full-screen login form")

	return cmd
}

func executeLogin(cmd *cobra.Command, params LoginParams) error {
	session, err := newSession(config.GetGlobalConfig())
	if err != nil {
		return err
	}

	if params.Interactive {
		if tui.DetectOutputMode(false) != tui.OutputModeInteractive {
			return validationError(errors.New("--interactive requires a terminal"))
		}
		if err := runLoginForm(cmd, session); err != nil {
			return err
		}
		cmd.Printf("Logged in as %s\n", session.User())
		return nil
	}

	username, password := params.Username, params.Password
	switch {
	case params.PasswordStdin:
		if password != "" {
			return validationError(errors.New("--password and --password-stdin are mutually exclusive"))
		}
		if username == "" {
			return validationError(errors.New("--password-stdin requires --username"))
		}
		if password, err = ReadPasswordLine(cmd.InOrStdin()); err != nil {
			return validationError(err)
		}
	case username == "" || password == "":
		if !tui.IsInputTTY() {
			return validationError(errors.New("--username and --password are required when stdin is not a terminal"))
		}
		if username, password, err = PromptCredentials(
			cmd.OutOrStdout(), cmd.InOrStdin(), username, terminalPasswordReader,
		); err != nil {
			return err
		}
	}

	if err := session.Login(cmd.Context(), username, password); err != nil {
		return err
	}
	cmd.Printf("Logged in as %s\n", session.User())
	return nil
}

// runLoginForm shows the login form until the user signs in or cancels.
func runLoginForm(cmd *cobra.Command, session *auth.Session) error {
	model := tui.NewLoginModel(cmd.Context(), session)
	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running login form: %w", err)
	}
	if !model.Authenticated() {
		return &ExitError{Code: ExitCodeAuth, Err: errors.New("login cancelled")}
	}
	logging.FromContext(cmd.Context()).Info().Str("user", session.User()).Msg("signed in from form")
	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSession(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			wasIn := session.IsAuthenticated()
			if err := session.Logout(); err != nil {
				return err
			}
			if wasIn {
				cmd.Println("Logged out")
			} else {
				cmd.Println("Not logged in")
			}
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSession(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return &ExitError{Code: ExitCodeAuth, Err: errNotLoggedIn}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.User())
			return err
		},
	}
}
