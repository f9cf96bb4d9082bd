package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/policy"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// AuthMiddleware autentica la petición: extrae el bearer token, valida firma
// y vigencia, y comprueba que el usuario siga existiendo y activo. Deja la
// identidad verificada en el contexto para la autorización posterior.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token faltante"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Formato de token inválido"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token inválido"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			msg := "Token inválido"
			if errors.Is(err, utils.ErrTokenExpirado) {
				msg = "Token expirado"
			}
			utils.RespondError(c, http.StatusUnauthorized, errors.New(msg))
			c.Abort()
			return
		}

		var usuario models.Usuario
		if err := db.First(&usuario, claims.UserID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Usuario inválido"))
			c.Abort()
			return
		}
		if !usuario.IsActive {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Cuenta inactiva"))
			c.Abort()
			return
		}

		c.Set("token", tokenString)
		c.Set("usuario", &usuario)
		c.Set("identity", policy.Identity{UserID: usuario.ID, Rol: usuario.Rol})

		c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado dejado por AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.Usuario, bool) {
	v, exists := c.Get("usuario")
	if !exists {
		return nil, false
	}
	usuario, ok := v.(*models.Usuario)
	return usuario, ok
}
