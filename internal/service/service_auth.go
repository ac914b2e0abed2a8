package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-portal/internal/crypto"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/internal/validators"
	"github.com/MKhiriev/go-auth-portal/models"
)

// dummyPassword is hashed once at construction. Logins for unknown usernames
// verify against that hash so they cost as much as a wrong password.
const dummyPassword = "auth-portal-timing-equalizer"

// authService is the concrete implementation of AuthService.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionService opens and resolves sessions.
	sessionService SessionService

	// hasher produces and checks credential hashes.
	hasher crypto.PasswordHasher

	// signupValidator and loginValidator check submitted forms before any
	// store access.
	signupValidator validators.Validator
	loginValidator  validators.Validator

	// dummyHash is a hash of dummyPassword with the configured algorithm.
	dummyHash string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService. It fails only when the hasher
// cannot produce the timing-equalizer hash.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	sessionService SessionService,
	hasher crypto.PasswordHasher,
	passwordValidator *validators.PasswordValidator,
	logger *logger.Logger,
) (AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}

	return &authService{
		userRepository:  userRepository,
		sessionService:  sessionService,
		hasher:          hasher,
		signupValidator: validators.NewSignupValidator(passwordValidator),
		loginValidator:  validators.NewLoginValidator(),
		dummyHash:       dummyHash,
		now:             time.Now,
		logger:          logger,
	}, nil
}

// Signup registers a new account and logs it in.
//
// Checks run in this order: field formats and password confirmation, the
// password policy, then username and e-mail availability. All problems are
// returned together as *ValidationError. The user row is written by a single
// INSERT, so a failure leaves nothing behind; a collision that slips past the
// availability check is reported the same way as one caught by it.
func (a *authService) Signup(ctx context.Context, form models.SignupForm) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	form.Username = validators.NormalizeUsername(form.Username)
	form.Email = validators.NormalizeEmail(form.Email)

	errs := models.FieldErrors{}
	if err := a.signupValidator.Validate(ctx, form); err != nil {
		var fieldsErr *validators.FieldsError
		if !errors.As(err, &fieldsErr) {
			return models.User{}, models.Session{}, fmt.Errorf("signup validation failed: %w", err)
		}
		errs.Merge(fieldsErr.Fields)
	}

	if err := a.checkAvailability(ctx, form, errs); err != nil {
		return models.User{}, models.Session{}, err
	}
	if !errs.Empty() {
		return models.User{}, models.Session{}, &ValidationError{Fields: errs}
	}

	passwordHash, err := a.hasher.Hash(form.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Session{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: passwordHash,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Bio:          form.Bio,
		IsActive:     true,
		DateJoined:   a.now(),
	})
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.User{}, models.Session{}, newFieldError(models.FieldUsername, MsgUsernameTaken)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, models.Session{}, newFieldError(models.FieldEmail, MsgEmailTaken)
	case err != nil:
		log.Err(err).Str("username", form.Username).Msg("user creation ended with error")
		return models.User{}, models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	session, err := a.startSession(ctx, &user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")
	return user, session, nil
}

// checkAvailability adds a field error for a username or e-mail that is
// already registered. Fields that failed format checks are not looked up.
func (a *authService) checkAvailability(ctx context.Context, form models.SignupForm, errs models.FieldErrors) error {
	if !errs.Has(models.FieldUsername) {
		exists, err := a.userRepository.ExistsByUsername(ctx, form.Username)
		if err != nil {
			return fmt.Errorf("username lookup failed: %w", err)
		}
		if exists {
			errs.Add(models.FieldUsername, MsgUsernameTaken)
		}
	}

	if !errs.Has(models.FieldEmail) {
		exists, err := a.userRepository.ExistsByEmail(ctx, form.Email)
		if err != nil {
			return fmt.Errorf("email lookup failed: %w", err)
		}
		if exists {
			errs.Add(models.FieldEmail, MsgEmailTaken)
		}
	}

	return nil
}

// Login authenticates by username and password and opens a session.
//
// Unknown usernames, wrong passwords and inactive accounts all return
// ErrInvalidCredentials after one hash verification each. A stored hash made
// with outdated settings is replaced after a successful login.
func (a *authService) Login(ctx context.Context, form models.LoginForm) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.loginValidator.Validate(ctx, form); err != nil {
		var fieldsErr *validators.FieldsError
		if errors.As(err, &fieldsErr) {
			return models.User{}, models.Session{}, &ValidationError{Fields: fieldsErr.Fields}
		}
		return models.User{}, models.Session{}, fmt.Errorf("login validation failed: %w", err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, validators.NormalizeUsername(form.Username))
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(form.Password, a.dummyHash)
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by username failed")
		return models.User{}, models.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(form.Password, user.PasswordHash) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Info().Int64("user_id", user.UserID).Msg("login attempt for inactive user")
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}

	session, err := a.startSession(ctx, &user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	a.rehashIfNeeded(ctx, &user, form.Password)

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	return user, session, nil
}

// startSession opens a session for user and stamps last_login. A failed
// stamp is logged but does not fail the login.
func (a *authService) startSession(ctx context.Context, user *models.User) (models.Session, error) {
	session, err := a.sessionService.Create(ctx, user.UserID)
	if err != nil {
		return models.Session{}, err
	}

	now := a.now()
	if err = a.userRepository.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("error updating last login")
		return session, nil
	}
	user.LastLogin = &now

	return session, nil
}

func (a *authService) rehashIfNeeded(ctx context.Context, user *models.User, password string) {
	if !a.hasher.NeedsRehash(user.PasswordHash) {
		return
	}

	log := logger.FromContext(ctx)

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("password rehash failed")
		return
	}
	if err = a.userRepository.UpdatePasswordHash(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error saving rehashed password")
		return
	}

	user.PasswordHash = passwordHash
	log.Debug().Int64("user_id", user.UserID).Msg("password rehashed")
}

func (a *authService) Logout(ctx context.Context, token string) error {
	return a.sessionService.Destroy(ctx, token)
}

// Authenticate returns the user of an active session. Sessions of deleted or
// deactivated users are rejected with ErrUnauthorized.
func (a *authService) Authenticate(ctx context.Context, token string) (models.User, models.Session, error) {
	session, err := a.sessionService.Validate(ctx, token)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, models.Session{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, models.Session{}, ErrUnauthorized
	}

	return user, session, nil
}
