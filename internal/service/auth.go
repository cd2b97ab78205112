package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"rooneyform-backend/internal/config"
	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	// ValidateToken returns the admin username carried by a valid token.
	ValidateToken(tokenString string) (string, error)
}

type authServiceImpl struct {
	adminRepo repository.AdminAccountRepository
	jwtCfg    config.JWT
	adminCfg  config.Admin
}

func NewAuthService(adminRepo repository.AdminAccountRepository, jwtCfg config.JWT, adminCfg config.Admin) AuthService {
	return &authServiceImpl{
		adminRepo: adminRepo,
		jwtCfg:    jwtCfg,
		adminCfg:  adminCfg,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if err := s.ensureDefaultAdmin(ctx); err != nil {
		return "", fmt.Errorf("ensure default admin: %w", err)
	}

	account, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin account: %w", err)
	}
	if !account.IsActive || account.PasswordHash != hashPassword(password) {
		return "", ErrInvalidCredentials
	}

	return s.createAccessToken(username)
}

func (s *authServiceImpl) createAccessToken(username string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   username,
		"scope": "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.jwtCfg.ExpiresMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	if scope, _ := claims["scope"].(string); scope != "admin" {
		return "", ErrInvalidCredentials
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return "", ErrInvalidCredentials
	}

	return username, nil
}

// ensureDefaultAdmin seeds the configured admin account on first login so a
// fresh deployment is reachable without a manual insert.
func (s *authServiceImpl) ensureDefaultAdmin(ctx context.Context) error {
	_, err := s.adminRepo.FindByUsername(ctx, s.adminCfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.adminRepo.Create(ctx, &model.AdminAccount{
		Username:     s.adminCfg.Username,
		PasswordHash: hashPassword(s.adminCfg.Password),
		IsActive:     true,
	})
}

func hashPassword(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
