package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "electoral"

type accessClaims struct {
	Role       domain.Role `json:"role"`
	NationalID string      `json:"nid"`
	Name       string      `json:"name,omitempty"`
	StationID  string      `json:"station_id,omitempty"`
	jwt.RegisteredClaims
}

var _ ports.AuthService = (*AuthService)(nil)

type AuthService struct {
	userRepo       ports.UserRepository
	stationService ports.StationService
	clock          Clock
	jwtSecret      []byte
	tokenTTL       time.Duration
	logger         *slog.Logger
}

func NewAuthService(
	userRepo ports.UserRepository,
	stationService ports.StationService,
	clock Clock,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		stationService: stationService,
		clock:          clock,
		jwtSecret:      []byte(jwtSecret),
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// Login checks a system user's password and issues a super administrator
// token. Unknown users and wrong passwords are indistinguishable to callers.
func (s *AuthService) Login(ctx context.Context, nationalID, password string) (string, *domain.Principal, error) {
	user, err := s.userRepo.GetByNationalID(ctx, strings.TrimSpace(nationalID))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", "national_id", user.NationalID)
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Role != domain.RoleSuperAdmin {
		return "", nil, domain.ErrInsufficientRole
	}

	principal := &domain.Principal{
		Role:       domain.RoleSuperAdmin,
		NationalID: user.NationalID,
		Name:       strings.TrimSpace(user.GivenName + " " + user.FamilyName),
	}
	token, err := s.generateAccessToken(principal)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, principal, nil
}

// PresidentAccess issues a token scoped to the president's open station of
// today.
func (s *AuthService) PresidentAccess(ctx context.Context, stationID uuid.UUID, nationalID string) (string, *domain.Principal, error) {
	station, err := s.stationService.FindForPresident(ctx, stationID, nationalID)
	if err != nil {
		return "", nil, err
	}

	id := station.ID
	principal := &domain.Principal{
		Role:       domain.RolePresident,
		NationalID: station.PresidentNationalID,
		Name:       station.PresidentName,
		StationID:  &id,
	}
	token, err := s.generateAccessToken(principal)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("president access granted", "national_id", principal.NationalID, "station_id", id)
	return token, principal, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*domain.Principal, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !claims.Role.Valid() || claims.NationalID == "" {
		return nil, domain.ErrInvalidToken
	}

	principal := &domain.Principal{
		Role:       claims.Role,
		NationalID: claims.NationalID,
		Name:       claims.Name,
	}
	if claims.Role == domain.RolePresident {
		id, err := uuid.Parse(claims.StationID)
		if err != nil {
			return nil, domain.ErrInvalidToken
		}
		principal.StationID = &id
	}
	return principal, nil
}

// EnsureAdmin creates the super administrator or resets its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, nationalID, password string) error {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" || password == "" {
		return domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.SystemUser{
		ID:           uuid.New(),
		NationalID:   nationalID,
		GivenName:    "System",
		FamilyName:   "Administrator",
		Role:         domain.RoleSuperAdmin,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to store admin: %w", err)
	}

	s.logger.Info("super administrator ensured", "national_id", nationalID)
	return nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *AuthService) generateAccessToken(principal *domain.Principal) (string, error) {
	now := s.clock.Now()
	claims := accessClaims{
		Role:       principal.Role,
		NationalID: principal.NationalID,
		Name:       principal.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   principal.NationalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	if principal.StationID != nil {
		claims.StationID = principal.StationID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
