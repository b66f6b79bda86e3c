package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// AuthResult bundles a signed token with the authenticated member.
type AuthResult struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	Member      *repository.Member `json:"member"`
}

type AuthService interface {
	// RequestAccess authenticates a member by invitation email alone.
	RequestAccess(ctx context.Context, email string) (*AuthResult, error)

	// AdminLogin authenticates an admin with email and password.
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)

	ValidateJWT(tokenString string) (memberID, role string, err error)
}

type authService struct {
	cfg        *config.Config
	memberRepo repository.MemberRepository
}

func NewAuthService(cfg *config.Config, memberRepo repository.MemberRepository) AuthService {
	return &authService{cfg: cfg, memberRepo: memberRepo}
}

// RequestAccess is the member-facing entry point: the invitation email is
// the credential. Unknown or deactivated emails both come back ErrNotFound
// so the response doesn't leak the member list.
func (s *authService) RequestAccess(ctx context.Context, email string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrInvalidInput
	}

	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive {
		return nil, ErrNotFound
	}

	token, err := s.signToken(member)
	if err != nil {
		return nil, err
	}

	if !member.HasLoggedIn {
		if err := s.memberRepo.MarkLoggedIn(ctx, member.ID); err != nil {
			log.Printf("[Auth] ⚠️ Failed to mark first login for %s: %v", member.ID, err)
		}
	}

	return &AuthResult{AccessToken: token, TokenType: "bearer", Member: member}, nil
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Role != types.RoleAdmin || member.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, ErrInactiveAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(member)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, TokenType: "bearer", Member: member}, nil
}

func (s *authService) signToken(member *repository.Member) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  member.ID,
		"role": member.Role,
		"tier": member.MembershipTier,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(s.cfg.JWTExpiry) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ValidateJWT(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}

	memberID, _ := claims["sub"].(string)
	if memberID == "" {
		return "", "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return memberID, role, nil
}
