package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
	"skillur/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenStore is the refresh-token whitelist backing session rotation.
type TokenStore interface {
	SaveRefresh(ctx context.Context, userID, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type AuthUseCase struct {
	userRepo     *repository.UserRepository
	tokenCache   TokenStore
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	referral     *ReferralUseCase
	log          *logger.Logger
}

func NewAuthUseCase(
	ur *repository.UserRepository,
	tc TokenStore,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	ref *ReferralUseCase,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
		referral:     ref,
		log:          log,
	}
}

type RegisterInput struct {
	SCSNumber    string
	Password     string
	PhoneNumber  string
	Class        string
	ReferralCode string
}

// Register creates the credential record and its profile. A supplied referral
// code is a best-effort side effect: the account exists either way.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (string, error) {
	if !domain.ValidClass(in.Class) {
		in.Class = "6"
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    domain.SCSEmail(in.SCSNumber),
		Password: hash,
	}
	profile := &domain.Profile{
		ID:          user.ID,
		SCSNumber:   in.SCSNumber,
		PhoneNumber: in.PhoneNumber,
		Role:        domain.RoleStudent,
		Class:       in.Class,
		Coins:       0,
	}
	if err := uc.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return "", err
	}

	if in.ReferralCode != "" {
		if err := uc.referral.Handle(ctx, in.ReferralCode, user.ID); err != nil {
			uc.log.Warn("referral not credited", "code", in.ReferralCode, "user_id", user.ID, "error", err)
		}
	}

	uc.log.Info("user registered", "user_id", user.ID, "class", profile.Class)
	return user.ID.String(), nil
}

func (uc *AuthUseCase) Login(ctx context.Context, scsNumber, password string) (string, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, domain.SCSEmail(scsNumber))
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return uc.generateAndSaveTokens(ctx, user.ID.String())
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", err
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != userID {
		return "", "", errors.New("token revoked")
	}
	_ = uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken)

	return uc.generateAndSaveTokens(ctx, userID)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) ValidateAccess(token string) (string, error) {
	return uc.tokenManager.ValidateAccessToken(token)
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, userID string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(userID)
	if err != nil {
		return "", "", err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
