package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/email"
	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/applytrack/applytrack/internal/repository"
)

type AuthUsecase struct {
	users  repository.UserRepository
	issuer *auth.TokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, issuer *auth.TokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		issuer: issuer,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Location  *string
}

// Register creates the account and signs the user straight in.
// The welcome email is best-effort: a delivery failure is logged, never
// surfaced to the caller.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Location:     input.Location,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.issuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.RegistrationsTotal.Inc()

	subject, body := email.WelcomeBody(user.FirstName)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "welcome email", "error", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password both come back as domain.ErrInvalidCredentials so the
// response does not reveal whether an account exists.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_email").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.issuer.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// Profile returns the user record for an authenticated id.
func (u *AuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
