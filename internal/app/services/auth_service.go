package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
	"github.com/namansharma28/gravitas-backend/internal/pkg/email"
)

const (
	otpLength         = 6
	otpExpiry         = 10 * time.Minute
	verifyTokenExpiry = 24 * time.Hour
)

// AuthService handles registration, login, email verification and
// session token lifecycle
type AuthService struct {
	userRepo              repositories.IUserRepository
	tokenRepo             repositories.ITokenRepository
	verificationTokenRepo repositories.IVerificationTokenRepository
	otpRepo               repositories.IOTPRepository
	jwtService            *auth.JWTService
	emailService          email.Service
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	verificationTokenRepo repositories.IVerificationTokenRepository,
	otpRepo repositories.IOTPRepository,
	jwtService *auth.JWTService,
	emailService email.Service,
) *AuthService {
	return &AuthService{
		userRepo:              userRepo,
		tokenRepo:             tokenRepo,
		verificationTokenRepo: verificationTokenRepo,
		otpRepo:               otpRepo,
		jwtService:            jwtService,
		emailService:          emailService,
	}
}

// Register creates an unverified user and emails an OTP. Email delivery
// failures do not roll the registration back.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizedEmail,
		Password: hashedPassword,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := s.sendOTP(ctx, user); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("OTP delivery failed after registration")
	}

	log.Info().Int64("userId", userID).Msg("User registered, verification pending")
	return user, nil
}

func (s *AuthService) sendOTP(ctx context.Context, user *models.User) error {
	code, err := email.GenerateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.EmailOTP{
		Email:      user.Email,
		OTP:        code,
		ExpiryDate: time.Now().Add(otpExpiry),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	return s.emailService.SendOTPEmail(user.Email, user.Name, code)
}

// ResendOTP issues a fresh OTP for an unverified account
func (s *AuthService) ResendOTP(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}
	if user.IsVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}

	return s.sendOTP(ctx, user)
}

// VerifyOTP consumes the emailed code and marks the account verified.
// Consumption is atomic: a code that succeeds once cannot succeed again.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.otpRepo.Consume(ctx, normalizedEmail, req.OTP); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizedEmail)
	if err != nil {
		return err
	}
	if user.IsVerified() {
		return nil
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return err
	}

	log.Info().Int64("userId", user.ID).Msg("Email verified via OTP")
	return nil
}

// SendVerificationEmail issues a single-use verification link token
func (s *AuthService) SendVerificationEmail(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}
	if user.IsVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}

	tokenValue, err := email.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	token := &models.VerificationToken{
		UserID:     user.ID,
		Token:      tokenValue,
		ExpiryDate: time.Now().Add(verifyTokenExpiry),
	}
	if err := s.verificationTokenRepo.Create(ctx, token); err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, user.Name, tokenValue)
}

// VerifyEmail consumes a verification link token and marks the account
// verified
func (s *AuthService) VerifyEmail(ctx context.Context, tokenValue string) error {
	userID, err := s.verificationTokenRepo.Consume(ctx, tokenValue)
	if err != nil {
		return err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}

	log.Info().Int64("userId", userID).Msg("Email verified via link")
	return nil
}

// Login verifies credentials and issues a token pair. Unverified
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified() {
		return nil, apperrors.ErrEmailNotVerified
	}

	return s.issueTokenPair(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked
// and a new pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes all of the user's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	stored := &models.RefreshToken{
		UserID:     user.ID,
		Token:      refreshToken,
		ExpiryDate: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokenRepo.CreateToken(ctx, stored); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
