package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tabreed-backend/internal/domain"
	"tabreed-backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	userRepo           domain.UserRepository
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, accessTokenExpiry, refreshTokenExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:           userRepo,
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (u *AuthUsecase) Register(ctx context.Context, email, password, firstName, lastName, phone, device string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "customer",
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, device)
}

func (u *AuthUsecase) Login(ctx context.Context, email, password, device string) (*AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	// Same error for unknown email and wrong password.
	if user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return u.issueTokens(ctx, user, device)
}

func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken, device string) (*AuthResult, error) {
	stored, err := u.userRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired or revoked")
	}

	user, err := u.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate: the old token dies with each refresh.
	if err := u.userRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, device)
}

func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return u.userRepo.RevokeRefreshToken(ctx, refreshToken)
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user *domain.User, device string) (*AuthResult, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.accessTokenExpiry)
	if err != nil {
		return nil, err
	}

	refresh := &domain.RefreshToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.refreshTokenExpiry),
		Device:    device,
	}
	if err := u.userRepo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
	}, nil
}

func (u *AuthUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	return u.userRepo.GetAll(ctx, limit, offset)
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, id, firstName, lastName, phone string) (*domain.User, error) {
	return u.userRepo.UpdateProfile(ctx, id, firstName, lastName, phone)
}

// --- Addresses ---

func (u *AuthUsecase) AddAddress(ctx context.Context, addr *domain.Address) error {
	return u.userRepo.AddAddress(ctx, addr)
}

func (u *AuthUsecase) UpdateAddress(ctx context.Context, addr *domain.Address) error {
	return u.userRepo.UpdateAddress(ctx, addr)
}

func (u *AuthUsecase) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.userRepo.GetAddresses(ctx, userID)
}

func (u *AuthUsecase) DeleteAddress(ctx context.Context, id, userID string) error {
	return u.userRepo.DeleteAddress(ctx, id, userID)
}
