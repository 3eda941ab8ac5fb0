package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aadidev-sraj/project-lyra/dto"
)

// JWTService signs and verifies the access tokens the API hands out on
// login. Tokens are HS256 and carry the user id plus role so the auth
// middleware can gate instructor and admin routes without a DB lookup.
type JWTService struct {
	context.DefaultService

	tokenTTL time.Duration
	secret   []byte
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

const tokenIssuer = "project-lyra"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("unsupported JWT format")
)

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.tokenTTL = 24 * time.Hour
	if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			svc.tokenTTL = time.Duration(hours) * time.Hour
		}
	}
	svc.secret = []byte(os.Getenv("JWT_SECRET"))
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// VerifyJWTToken checks the signature and expiry and returns the claims.
func (svc *JWTService) VerifyJWTToken(jwtToken string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (svc *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return svc.secret, nil
}

func (svc *JWTService) GenerateTokenPair(userID, role string) (*dto.TokenPair, error) {
	accessToken, err := svc.ToJWT(userID, role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   int64(svc.tokenTTL.Seconds()),
	}, nil
}

func (svc *JWTService) ToJWT(userID, role string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization
// header value.
func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", errors.New("invalid authorization header format")
	}
	return strings.TrimPrefix(authHeader, prefix), nil
}
