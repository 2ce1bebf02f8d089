package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/logging"
	"github.com/rshade/coalcarbon/internal/tui"
)

// newSession builds a session from the auth section of cfg and restores any
// saved user. With auth.persist off the session lives only in memory.
func newSession(cfg *config.Config) (*auth.Session, error) {
	verifier, err := auth.NewVerifier(cfg.Auth.Username, cfg.Auth.PasswordHash)
	if err != nil {
		return nil, validationError(fmt.Errorf("auth configuration: %w", err))
	}

	var store auth.Store = &auth.MemoryStore{}
	if cfg.Auth.Persist {
		store = auth.FileStore{Path: cfg.Auth.SessionFile}
	}

	session := auth.NewSession(verifier, store,
		auth.WithLoginDelay(cfg.Auth.LoginDelay),
		auth.WithSessionLogger(logging.ComponentLogger(logger, "auth")),
		auth.WithLoginObserver(recorder),
	)
	if err := session.Restore(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return session, nil
}

// requireLogin returns the restored session. When nobody is signed in and
// both ends are terminals, the login form is shown first; otherwise an auth
// ExitError is returned.
func requireLogin(cmd *cobra.Command) (*auth.Session, error) {
	session, err := newSession(config.GetGlobalConfig())
	if err != nil {
		return nil, err
	}
	if session.IsAuthenticated() {
		return session, nil
	}

	log := logging.FromContext(cmd.Context())
	log.Warn().Str("command", cmd.Name()).Msg("login required")
	if tui.DetectOutputMode(false) == tui.OutputModeInteractive {
		if err := runLoginForm(cmd, session); err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, &ExitError{Code: ExitCodeAuth, Err: errNotLoggedIn}
}
