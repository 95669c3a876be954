package services

import (
	"context"
	"net/http"

	"taskflow/internal/api"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/httpclient"
	"taskflow/internal/logging"
	"taskflow/internal/session"
	"taskflow/internal/validation"
)

// Fallback messages when the backend gives no reason
const (
	LoginFailedMessage        = "Login failed"
	RegistrationFailedMessage = "Registration failed"
)

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	api       api.AuthAPI
	session   *session.Session
	validator *validation.AuthValidator
	logger    *logging.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(authAPI api.AuthAPI, sess *session.Session, logger *logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authServiceImpl{
		api:       authAPI,
		session:   sess,
		validator: validation.NewAuthValidator(),
		logger:    logger,
	}
}

// Login exchanges credentials for a token and persists it
func (a *authServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	creds := domain.Credentials{Identifier: identifier, Password: password}
	if err := a.validator.ValidateCredentials(creds); err != nil {
		return nil, err
	}

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, authFailure(err, LoginFailedMessage)
	}
	if err := a.session.Save(ctx, *resp); err != nil {
		return nil, err
	}

	a.logger.Info("logged in", logging.Fields{"username": resp.User.Username})
	return &resp.User, nil
}

// Register creates an account and persists the returned token
func (a *authServiceImpl) Register(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	if err := a.validator.ValidateProfile(profile); err != nil {
		return nil, err
	}

	resp, err := a.api.Register(ctx, profile)
	if err != nil {
		return nil, authFailure(err, RegistrationFailedMessage)
	}
	if err := a.session.Save(ctx, *resp); err != nil {
		return nil, err
	}

	a.logger.Info("registered", logging.Fields{"username": resp.User.Username})
	return &resp.User, nil
}

// Logout clears the token and the cached user
func (a *authServiceImpl) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// Restore loads the persisted session. When a token survives without a cached
// user, the user is fetched from the backend; a rejected token logs the session out.
func (a *authServiceImpl) Restore(ctx context.Context) (*domain.User, error) {
	if err := a.session.Restore(ctx); err != nil {
		return nil, err
	}
	if !a.session.Authenticated() {
		return nil, nil
	}
	if user, ok := a.session.User(); ok {
		return &user, nil
	}
	return a.Refresh(ctx)
}

// Refresh asks the backend who the token belongs to
func (a *authServiceImpl) Refresh(ctx context.Context) (*domain.User, error) {
	if a.session.Token() == "" {
		return nil, errors.NewAuthenticationError("not logged in", nil)
	}

	user, err := a.api.Me(ctx)
	if err != nil {
		if httpclient.StatusOf(err) == http.StatusUnauthorized {
			a.logger.Warn("stored token rejected; logging out", nil)
			if clearErr := a.session.Clear(ctx); clearErr != nil {
				return nil, clearErr
			}
			return nil, errors.NewAuthenticationError("session expired, please log in again", err)
		}
		return nil, err
	}

	if err := a.session.SetUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the cached user without a network call
func (a *authServiceImpl) CurrentUser() (domain.User, bool) {
	return a.session.User()
}

// authFailure keeps the backend's message when it sent one, otherwise the fallback
func authFailure(err error, fallback string) error {
	message := fallback
	if m, ok := httpclient.BackendMessage(err); ok {
		message = m
	}
	return errors.NewAuthenticationError(message, err)
}
