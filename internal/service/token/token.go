package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidRefresh = errors.New("invalid refresh token")

// Service signs and rotates the JWT pair. Refresh tokens are persisted so
// they can be revoked; access tokens are stateless.
type Service struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

type Pair struct {
	Access  string
	Refresh string
}

func (s *Service) signAccess(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func (s *Service) signRefresh(userID, role string) (string, int64, error) {
	exp := time.Now().Add(RefreshTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.RefreshSecret)
	return signed, exp.Unix(), err
}

// IssuePair signs a fresh access/refresh pair and stores the refresh token.
func (s *Service) IssuePair(userID, role string) (Pair, error) {
	access, err := s.signAccess(userID, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, exp, err := s.signRefresh(userID, role)
	if err != nil {
		return Pair{}, err
	}
	stored := models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: exp,
	}
	if err := s.DB.Create(&stored).Error; err != nil {
		return Pair{}, fmt.Errorf("db error: %w", err)
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// validateRefresh checks the signature, the typ claim, and the stored row.
func (s *Service) validateRefresh(rawToken string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidRefresh
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidRefresh
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, ErrInvalidRefresh
	}

	var stored models.RefreshToken
	if err := s.DB.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, ErrInvalidRefresh
	}

	return claims, nil
}

// Rotate exchanges a valid refresh token for a new pair. The old token is
// revoked so it cannot be replayed.
func (s *Service) Rotate(rawToken string) (Pair, error) {
	claims, err := s.validateRefresh(rawToken)
	if err != nil {
		return Pair{}, err
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return Pair{}, ErrInvalidRefresh
	}

	pair, err := s.IssuePair(userID, role)
	if err != nil {
		return Pair{}, err
	}
	if err := s.Revoke(rawToken); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// Revoke marks a stored refresh token unusable.
func (s *Service) Revoke(rawToken string) error {
	if err := s.DB.Model(&models.RefreshToken{}).
		Where("token = ?", rawToken).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
