package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/middlewares"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/policy"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

type UsuarioController struct {
	DB *gorm.DB
}

func NewUsuarioController(db *gorm.DB) *UsuarioController {
	return &UsuarioController{DB: db}
}

// Register da de alta un usuario. El rol es opcional y por defecto cliente.
func (uc *UsuarioController) Register(c *gin.Context) {
	var req struct {
		Nombre   string `json:"nombre"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Rol      int    `json:"rol"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	nombre := strings.TrimSpace(req.Nombre)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if nombre == "" || email == "" || req.Password == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Todos los campos son requeridos"))
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("La contraseña debe tener al menos 6 caracteres"))
		return
	}

	var existente models.Usuario
	if err := uc.DB.Where("email = ?", email).First(&existente).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("El correo ya está registrado"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	usuario := models.Usuario{
		Nombre:   nombre,
		Email:    email,
		Password: string(hashed),
		Rol:      req.Rol,
		IsActive: true,
	}
	if err := uc.DB.Create(&usuario).Error; err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	utils.InfoLogger.Printf("Usuario registrado: %s (rol=%d)", usuario.Email, usuario.Rol)
	utils.RespondJSON(c, http.StatusCreated, "Usuario registrado con éxito", gin.H{
		"user": usuario,
	})
}

// Login valida credenciales y emite el token firmado.
func (uc *UsuarioController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Email y contraseña son requeridos"))
		return
	}

	var usuario models.Usuario
	if err := uc.DB.Where("email = ?", email).First(&usuario).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Credenciales inválidas"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Credenciales inválidas"))
		return
	}
	if !usuario.IsActive {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Cuenta inactiva"))
		return
	}

	token, err := utils.GenerateToken(usuario.ID, usuario.Email, usuario.Rol)
	if err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	utils.InfoLogger.Printf("Login de %s (rol=%d)", usuario.Email, usuario.Rol)
	utils.RespondJSON(c, http.StatusOK, "Login exitoso", gin.H{
		"token": token,
		"user":  usuario,
	})
}

// Logout revoca el token actual hasta su caducidad natural.
func (uc *UsuarioController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Sesión cerrada", nil)
}

// GetPerfil devuelve el usuario autenticado.
func (uc *UsuarioController) GetPerfil(c *gin.Context) {
	usuario, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Token faltante"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Perfil obtenido exitosamente", gin.H{
		"user": usuario,
	})
}

// ActualizarPerfil permite al propio usuario cambiar nombre, email o password.
func (uc *UsuarioController) ActualizarPerfil(c *gin.Context) {
	usuario, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Token faltante"))
		return
	}

	var req struct {
		Nombre   *string `json:"nombre"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Nombre != nil && strings.TrimSpace(*req.Nombre) != "" {
		usuario.Nombre = strings.TrimSpace(*req.Nombre)
	}

	if req.Email != nil {
		nuevoEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if nuevoEmail != "" && nuevoEmail != usuario.Email {
			var otro models.Usuario
			if err := uc.DB.Where("email = ?", nuevoEmail).First(&otro).Error; err == nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("El email ya está en uso"))
				return
			}
			usuario.Email = nuevoEmail
		}
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("La contraseña debe tener al menos 6 caracteres"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondAppError(c, utils.NewInternalError(err))
			return
		}
		usuario.Password = string(hashed)
	}

	if err := uc.DB.Save(usuario).Error; err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Perfil actualizado exitosamente", gin.H{
		"user": usuario,
	})
}

// GetAllUsuarios lista los usuarios (solo admin, aplicado en el router).
func (uc *UsuarioController) GetAllUsuarios(c *gin.Context) {
	var usuarios []models.Usuario
	if err := uc.DB.Find(&usuarios).Error; err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Usuarios obtenidos exitosamente", gin.H{
		"usuarios": usuarios,
	})
}

// ActualizarUsuario cambia rol o bandera de actividad de otro usuario.
// El cambio de rol exige superadmin; el de is_active basta con admin.
func (uc *UsuarioController) ActualizarUsuario(c *gin.Context) {
	var usuario models.Usuario
	if err := uc.DB.First(&usuario, c.Param("user_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Recurso no encontrado"))
		return
	}

	var req struct {
		Rol      *int  `json:"rol"`
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rol != nil {
		identity, _ := c.MustGet("identity").(policy.Identity)
		if !policy.Allow(identity, policy.SuperAdmin) {
			utils.RespondError(c, http.StatusForbidden, errors.New("Permisos de superadministrador requeridos"))
			return
		}
		usuario.Rol = *req.Rol
	}
	if req.IsActive != nil {
		usuario.IsActive = *req.IsActive
	}

	if err := uc.DB.Save(&usuario).Error; err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Usuario actualizado exitosamente", gin.H{
		"user": usuario,
	})
}

// EliminarUsuario borra un usuario; nunca la propia cuenta.
func (uc *UsuarioController) EliminarUsuario(c *gin.Context) {
	actual, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Token faltante"))
		return
	}

	var usuario models.Usuario
	if err := uc.DB.First(&usuario, c.Param("user_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Recurso no encontrado"))
		return
	}

	if usuario.ID == actual.ID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("No puedes eliminar tu propia cuenta"))
		return
	}

	if err := uc.DB.Delete(&usuario).Error; err != nil {
		utils.RespondAppError(c, utils.NewInternalError(err))
		return
	}

	utils.InfoLogger.Printf("Usuario %d eliminado por %d", usuario.ID, actual.ID)
	utils.RespondJSON(c, http.StatusOK, "Usuario eliminado exitosamente", nil)
}
