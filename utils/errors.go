package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError clasifica un fallo de negocio con el código HTTP que le
// corresponde. El mensaje siempre es apto para el cliente; Err guarda la
// causa interna y no se serializa.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// Los conflictos de negocio (email duplicado, slot ocupado) responden 400
// igual que el despliegue de referencia.
func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "Error interno del servidor", Err: err}
}

// RespondAppError responde según la clase del error. Cualquier error que no
// sea *AppError se trata como fallo interno y no expone detalles al cliente.
func RespondAppError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
		}
		RespondJSON(c, appErr.Status, appErr.Message, nil)
		return
	}
	ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	RespondJSON(c, http.StatusInternalServerError, "Error interno del servidor", nil)
}
