package utils

import (
	"errors"
	"fmt"
	"time"

	"applications-server/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// LoginClaims 承载外部身份系统签发的用户身份。
// 本服务只校验令牌，不负责签发，GenerateLoginToken 供共享密钥的签发方和测试使用。
type LoginClaims struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"` // "login"
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func GenerateLoginToken(userID string, duration time.Duration) (string, error) {
	claims := LoginClaims{
		UserID: userID,
		Type:   "login",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    "applications-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*LoginClaims); ok && token.Valid {
		if claims.Type != "login" {
			return nil, errors.New("invalid token type")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
