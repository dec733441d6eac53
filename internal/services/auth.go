package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/repos"
	"github.com/opencourses/backend/internal/requestdata"
	"github.com/opencourses/backend/internal/types"
)

// TokenSettings is validated once at boot; every field is mandatory.
type TokenSettings struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) error
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) (*requestdata.RequestData, error)
	AccessTTL() time.Duration
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	settings TokenSettings
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, settings TokenSettings) AuthService {
	return &authService{
		db:       db,
		log:      baseLog.With("service", "AuthService"),
		userRepo: userRepo,
		settings: settings,
	}
}

func (as *authService) Register(ctx context.Context, email, password, fullName string) error {
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		as.log.Error("EmailExists check failed", "error", err)
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return types.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := as.userRepo.Create(ctx, nil, user); err != nil {
		as.log.Error("Register failed", "error", err)
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if errors.Is(err, types.ErrNotFound) {
		return "", types.ErrInvalidCredentials
	}
	if err != nil {
		as.log.Error("GetByEmail failed", "error", err)
		return "", fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", types.ErrInvalidCredentials
	}

	return as.generateAccessToken(user)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iss":   as.settings.Issuer,
		"aud":   as.settings.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(as.settings.AccessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.settings.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, expiry, issuer and audience, and returns
// the principal carried in the token.
func (as *authService) ValidateToken(tokenString string) (*requestdata.RequestData, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(as.settings.Secret), nil
		},
		jwt.WithIssuer(as.settings.Issuer),
		jwt.WithAudience(as.settings.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	email, _ := claims["email"].(string)
	return &requestdata.RequestData{
		UserID:      userID,
		Email:       email,
		TokenString: tokenString,
	}, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.settings.AccessTTL
}
