package middleware

import (
	"net/http"
	"strings"

	"github.com/45061/Hotelregistryapp/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
	// TokenCookie is the httpOnly session cookie set on login.
	TokenCookie = "token"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID         string  `json:"user_id"`
	Email          string  `json:"email"`
	EsAdmin        bool    `json:"es_admin"`
	EsSuperUsuario bool    `json:"es_super_usuario"`
	Autorizado     bool    `json:"autorizado"`
	RolCaja        *string `json:"rol_caja"`
	jwt.RegisteredClaims
}

// JWTAuth validates the session token on every protected route. The token is
// read from the cookie first, then from a Bearer header.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAutorizado rejects users a super-user has not authorized yet.
func RequireAutorizado() gin.HandlerFunc {
	return requireClaims("Usuario no autorizado", func(cl *JWTClaims) bool {
		return cl.Autorizado || cl.EsSuperUsuario
	})
}

// RequireAdmin allows admins and super-users.
func RequireAdmin() gin.HandlerFunc {
	return requireClaims("Permisos insuficientes", func(cl *JWTClaims) bool {
		return cl.EsAdmin || cl.EsSuperUsuario
	})
}

func RequireSuperUsuario() gin.HandlerFunc {
	return requireClaims("Permisos insuficientes", func(cl *JWTClaims) bool {
		return cl.EsSuperUsuario
	})
}

func requireClaims(msg string, allowed func(*JWTClaims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		if !allowed(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
