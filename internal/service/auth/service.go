package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth/models"
)

const tokenType = "Bearer"

// Service регистрация, вход и проверка access токенов
type Service struct {
	userRepo     UserRepository
	revocations  RevocationStore
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(
	userRepo UserRepository,
	revocations RevocationStore,
	txManager TransactionManager,
	logger Logger,
	secret string,
	tokenTTL time.Duration,
	bcryptCost int,
) *Service {
	return &Service{
		userRepo:     userRepo,
		revocations:  revocations,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		bcryptCost:   bcryptCost,
	}
}

// SignUp регистрирует пользователя вместе с профилем и сразу выдаёт токен
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)

	if err := validateSignUp(username, email, req.Password, phone); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("SignUp: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: SignUp - hash password: %v", ErrInternal, err)
	}

	var created *domain.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		taken, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("%w: SignUp - check username: %v", ErrInternal, err)
		}
		if taken {
			return ErrUsernameTaken
		}

		phoneTaken, err := s.userRepo.PhoneExists(ctx, phone)
		if err != nil {
			return fmt.Errorf("%w: SignUp - check phone: %v", ErrInternal, err)
		}
		if phoneTaken {
			return ErrPhoneTaken
		}

		created, err = s.userRepo.Create(ctx, &domain.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, userRepo.ErrUsernameTaken) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("%w: SignUp - create user: %v", ErrInternal, err)
		}

		err = s.userRepo.CreateProfile(ctx, &domain.Profile{UserID: created.ID, PhoneNumber: &phone})
		if err != nil {
			if errors.Is(err, userRepo.ErrPhoneTaken) {
				return ErrPhoneTaken
			}
			return fmt.Errorf("%w: SignUp - create profile: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrPhoneTaken) {
			s.logger.Warn("SignUp: rejected username=%s: %v", username, err)
			return nil, err
		}
		s.logger.Error("SignUp: failed for username=%s: %v", username, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: SignUp - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("SignUp: registered user id=%d username=%s", created.ID, created.Username)
	return s.tokenResponse(created)
}

// Login проверяет пароль и выдаёт токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - get user: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return s.tokenResponse(user)
}

// Logout отзывает токен до истечения его срока
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.parseToken(rawToken)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.timeProvider.Now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Logout: failed to revoke token for user=%d: %v", claims.UserID, err)
		return fmt.Errorf("%w: Logout - revoke: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: user id=%d logged out", claims.UserID)
	return nil
}

// Verify проверяет токен и возвращает ID пользователя
func (s *Service) Verify(ctx context.Context, rawToken string) (int64, error) {
	claims, err := s.parseToken(rawToken)
	if err != nil {
		return 0, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Verify: revocation lookup failed: %v", err)
		return 0, fmt.Errorf("%w: Verify - revocation lookup: %v", ErrInternal, err)
	}
	if revoked {
		return 0, ErrTokenRevoked
	}

	return claims.UserID, nil
}

func (s *Service) tokenResponse(user *domain.User) (*models.TokenResponse, error) {
	token, expiresAt, err := s.issueToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("issueToken: failed for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		UserID:      user.ID,
		Username:    user.Username,
	}, nil
}

func validateSignUp(username, email, password, phone string) error {
	if username == "" || email == "" || password == "" || phone == "" {
		return ErrMissingFields
	}
	if len(username) > domain.MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if len(phone) > domain.MaxPhoneLength {
		return ErrPhoneTooLong
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if len(password) < domain.MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
