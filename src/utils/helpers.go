package utils

import (
	"errors"
	"hbs/src/config"
	"hbs/src/types"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(username string, userId uint, role string) (string, error) {
	expirationTime := time.Now().Add(config.TOKEN_TTL)
	claims := &types.Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// EuclideanDistance compares two face descriptors of equal length.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("descriptor length mismatch")
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// ToFloatVector converts a stored jsonb descriptor back to a numeric vector.
func ToFloatVector(raw types.JSONBArray) []float64 {
	vec := make([]float64, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			vec = append(vec, n)
		case int:
			vec = append(vec, float64(n))
		case int64:
			vec = append(vec, float64(n))
		}
	}
	return vec
}

// ToJSONBArray converts a request descriptor into its storage representation.
func ToJSONBArray(vec []float64) types.JSONBArray {
	arr := make(types.JSONBArray, 0, len(vec))
	for _, v := range vec {
		arr = append(arr, v)
	}
	return arr
}
