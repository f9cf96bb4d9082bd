package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/policy"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// RequireCapability autoriza contra la identidad que dejó AuthMiddleware.
// La decisión en sí es pura (policy.Allow); aquí solo se traduce a HTTP.
func RequireCapability(cap policy.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("identity")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token faltante"))
			c.Abort()
			return
		}

		identity, ok := v.(policy.Identity)
		if !ok || !policy.Allow(identity, cap) {
			msg := "Permisos de administrador requeridos"
			if cap == policy.SuperAdmin {
				msg = "Permisos de superadministrador requeridos"
			}
			utils.RespondError(c, http.StatusForbidden, errors.New(msg))
			c.Abort()
			return
		}

		c.Next()
	}
}
