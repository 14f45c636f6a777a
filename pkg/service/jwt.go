package service

import (
	"errors"
	"strconv"
	"time"

	apperrors "refurb-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// OperatorClaims - содержимое токена доступа. Токены выпускает внешний
// провайдер авторизации с тем же секретом (или команда refurbctl token).
type OperatorClaims struct {
	OperatorID uint64 `json:"operator_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(operatorID uint64, role string) (string, error)
	ValidateToken(tokenString string) (*OperatorClaims, error)
	GetTokenTTL() time.Duration
}

type jwtService struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, tokenTTL time.Duration) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *jwtService) GenerateToken(operatorID uint64, role string) (string, error) {
	now := s.now()
	claims := &OperatorClaims{
		OperatorID: operatorID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(operatorID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *jwtService) GetTokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *jwtService) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || !token.Valid || claims.OperatorID == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Role != RoleAdmin && claims.Role != RoleTechnician {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
