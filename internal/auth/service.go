package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stockdeck/internal/domain"
	"stockdeck/internal/platform/metrics"
	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/requestcontext"
)

// TokenIssuer signs access tokens for authenticated sessions.
type TokenIssuer interface {
	GenerateAccessToken(userID, sessionID string, expiresIn time.Duration) (string, error)
}

// Service implements sign-up, sign-in, and sign-out on top of the user and
// session stores, and publishes principal changes through the Tracker.
type Service struct {
	users      UserStore
	sessions   SessionStore
	tokens     TokenIssuer
	tracker    *Tracker
	metrics    *metrics.Metrics
	logger     *slog.Logger
	sessionTTL time.Duration
	bcryptCost int
}

func NewService(users UserStore, sessions SessionStore, tokens TokenIssuer, tracker *Tracker, m *metrics.Metrics, logger *slog.Logger, sessionTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		tracker:    tracker,
		metrics:    m,
		logger:     logger,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
	}
}

// Tracker exposes the principal-change stream for downstream subscribers.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// SignUp registers a new user. It does not sign the user in; the original
// flow returns to the sign-in form after account creation.
func (s *Service) SignUp(ctx context.Context, email, password string) (domain.Principal, error) {
	if len(password) < 6 {
		return domain.Principal{}, apierrors.New(apierrors.CodeInvalidInput, "Password should be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.Principal{}, apierrors.New(apierrors.CodeEmailInUse, "Account already exists. Please sign in.")
	} else if !errors.Is(err, ErrNotFound) {
		return domain.Principal{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.Principal{}, err
	}

	now := requestcontext.Now(ctx)
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return domain.Principal{}, err
	}

	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	return user.Principal(), nil
}

// SignInResult carries the signed token plus the authenticated principal.
type SignInResult struct {
	AccessToken string
	SessionID   string
	Principal   domain.Principal
}

// SignIn verifies credentials, records the login, opens a session, and
// publishes the new principal.
func (s *Service) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SignInResult{}, apierrors.New(apierrors.CodeUserNotFound, "No account found with this email.")
		}
		return SignInResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return SignInResult{}, apierrors.New(apierrors.CodeWrongPassword, "Wrong password. Please try again.")
	}

	user.LastLoginAt = requestcontext.Now(ctx)
	if err := s.users.Save(ctx, user); err != nil {
		return SignInResult{}, err
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: user.LastLoginAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return SignInResult{}, err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, session.ID, s.sessionTTL)
	if err != nil {
		return SignInResult{}, err
	}

	principal := user.Principal()
	s.tracker.Publish(&principal)
	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID, "session_id", session.ID)

	return SignInResult{
		AccessToken: token,
		SessionID:   session.ID,
		Principal:   principal,
	}, nil
}

// SignOut revokes the session and publishes the signed-out state. Subscribers
// clear owner-scoped caches before this returns, so a subsequent request from
// another principal can never observe the previous user's data.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.tracker.Publish(nil)
	s.logger.InfoContext(ctx, "user signed out", "session_id", sessionID)
	return nil
}

// Profile returns the principal for an authenticated user ID.
func (s *Service) Profile(ctx context.Context, userID string) (domain.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Principal{}, err
	}
	return user.Principal(), nil
}

// SessionExists satisfies the auth middleware's session liveness check.
func (s *Service) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return s.sessions.Exists(ctx, sessionID)
}
