package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"kursplatforma/config"
)

// AuthCookie is the http-only cookie carrying the session token for
// browser navigation; programmatic clients use the Authorization header.
const AuthCookie = "auth"

// ErrInvalidToken is the single outcome for every verification failure.
// Callers must not tell a malformed token from an expired or badly signed
// one in user-facing messages.
var ErrInvalidToken = errors.New("invalid token")

// UserClaims are the verified session claims made available to handlers.
type UserClaims struct {
	UserID string
	Email  string
	Role   string
}

// GenerateAuthToken signs session claims with the server secret. Tokens are
// valid for 7 days.
func GenerateAuthToken(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"uloga": role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// VerifyAuthToken checks signature and expiry and returns the claims.
func VerifyAuthToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["uloga"].(string)
	if sub == "" || email == "" {
		return nil, ErrInvalidToken
	}

	return &UserClaims{UserID: sub, Email: email, Role: role}, nil
}

// ExtractToken reads the session token from the request. The Authorization
// header takes priority over the auth cookie.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return c.Cookies(AuthCookie)
}

// SetAuthCookie writes the session cookie alongside a login response.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   config.AppConfig.Env == "production",
	})
}

// ClearAuthCookie expires the session cookie on logout.
func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validacija nije uspela.",
		"polja":   errors,
	})
}
