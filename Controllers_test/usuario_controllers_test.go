package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/controllers"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/events"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/middlewares"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/policy"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/services"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// setupTestDB abre un SQLite en memoria con el esquema migrado.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	err = db.AutoMigrate(&models.Usuario{}, &models.Cliente{}, &models.Mesa{}, &models.Reserva{})
	if err != nil {
		t.Fatalf("fallo en AutoMigrate: %v", err)
	}
	return db
}

// setupRouterForTest registra los endpoints bajo prueba, sin limitadores de
// tráfico para que los tests no compitan por cuota.
func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	bus := events.NewBus()
	mesaSvc := services.NewMesaService(db, bus)
	reservaSvc := services.NewReservaService(db, mesaSvc, bus)

	usuarioCtrl := controllers.NewUsuarioController(db)
	mesaCtrl := controllers.NewMesaController(mesaSvc)
	reservaCtrl := controllers.NewReservaController(reservaSvc)

	api := r.Group("/api")
	api.POST("/register", usuarioCtrl.Register)
	api.POST("/login", usuarioCtrl.Login)
	api.POST("/reservas", reservaCtrl.CrearReserva)
	api.GET("/reservas", reservaCtrl.GetReservas)
	api.GET("/mesas", mesaCtrl.GetAllMesas)

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.GET("/perfil", usuarioCtrl.GetPerfil)
		auth.PUT("/perfil", usuarioCtrl.ActualizarPerfil)
		auth.POST("/logout", usuarioCtrl.Logout)
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db))
	admin.Use(middlewares.RequireCapability(policy.Admin))
	{
		admin.GET("/usuarios", usuarioCtrl.GetAllUsuarios)
		admin.PUT("/usuarios/:user_id", usuarioCtrl.ActualizarUsuario)
		admin.DELETE("/usuarios/:user_id", usuarioCtrl.EliminarUsuario)
		admin.POST("/mesas", mesaCtrl.CrearMesa)
		admin.PUT("/mesas/:mesa_id", mesaCtrl.ActualizarEstadoMesa)
		admin.PUT("/reservas/:reserva_id", reservaCtrl.ActualizarReserva)
		admin.DELETE("/reservas/:reserva_id", reservaCtrl.EliminarReserva)
	}

	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("no se pudo serializar el body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("no se pudo crear la petición: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v (%s)", err, w.Body.String())
	}
	return resp
}

// crearUsuario inserta un usuario directamente y devuelve su token de sesión.
func crearUsuario(t *testing.T, db *gorm.DB, email string, rol int) (models.Usuario, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("fallo en bcrypt: %v", err)
	}
	usuario := models.Usuario{
		Nombre:   "Usuario de Prueba",
		Email:    email,
		Password: string(hashed),
		Rol:      rol,
		IsActive: true,
	}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("no se pudo crear el usuario: %v", err)
	}
	token, err := utils.GenerateToken(usuario.ID, usuario.Email, usuario.Rol)
	if err != nil {
		t.Fatalf("no se pudo generar el token: %v", err)
	}
	return usuario, token
}

func TestRegisterYLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	w := doRequest(t, r, "POST", "/api/register", map[string]interface{}{
		"nombre":   "Ana Pérez",
		"email":    "Ana@Example.com",
		"password": "secreto123",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, true, resp["status"])
	assert.Equal(t, "Usuario registrado con éxito", resp["message"])

	// El email se normaliza a minúsculas al registrar
	var guardado models.Usuario
	assert.NoError(t, db.Where("email = ?", "ana@example.com").First(&guardado).Error)
	assert.Equal(t, models.RolCliente, guardado.Rol)
	assert.True(t, guardado.IsActive)

	// Login con el email normalizado
	w = doRequest(t, r, "POST", "/api/login", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "secreto123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// El token emitido abre el perfil
	w = doRequest(t, r, "GET", "/api/perfil", nil, data["token"].(string))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterEmailDuplicado(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	crearUsuario(t, db, "ana@example.com", models.RolCliente)

	w := doRequest(t, r, "POST", "/api/register", map[string]interface{}{
		"nombre":   "Ana Otra Vez",
		"email":    "ana@example.com",
		"password": "secreto123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "El correo ya está registrado", resp["message"])
}

func TestRegisterPasswordCorta(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	w := doRequest(t, r, "POST", "/api/register", map[string]interface{}{
		"nombre":   "Ana Pérez",
		"email":    "ana@example.com",
		"password": "123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "La contraseña debe tener al menos 6 caracteres", resp["message"])
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	crearUsuario(t, db, "ana@example.com", models.RolCliente)

	// Password incorrecta y email inexistente responden igual
	for _, body := range []map[string]interface{}{
		{"email": "ana@example.com", "password": "incorrecta"},
		{"email": "nadie@example.com", "password": "secreto123"},
	} {
		w := doRequest(t, r, "POST", "/api/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "Credenciales inválidas", resp["message"])
	}
}

func TestLoginCuentaInactiva(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	usuario, _ := crearUsuario(t, db, "baja@example.com", models.RolCliente)
	db.Model(&usuario).Update("is_active", false)

	w := doRequest(t, r, "POST", "/api/login", map[string]interface{}{
		"email":    "baja@example.com",
		"password": "secreto123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Cuenta inactiva", resp["message"])
}

func TestPerfilSinToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	w := doRequest(t, r, "GET", "/api/perfil", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Token faltante", resp["message"])
}

func TestPerfilTokenExpirado(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	usuario, _ := crearUsuario(t, db, "ana@example.com", models.RolCliente)

	expirado := tokenExpirado(t, usuario)
	w := doRequest(t, r, "GET", "/api/perfil", nil, expirado)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Token expirado", resp["message"])
}

func TestLogoutRevocaToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	_, token := crearUsuario(t, db, "ana@example.com", models.RolCliente)

	w := doRequest(t, r, "POST", "/api/logout", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// El mismo token deja de servir
	w = doRequest(t, r, "GET", "/api/perfil", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Token inválido", resp["message"])
}

func TestActualizarPerfil(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	usuario, token := crearUsuario(t, db, "ana@example.com", models.RolCliente)

	w := doRequest(t, r, "PUT", "/api/perfil", map[string]interface{}{
		"nombre": "Ana María",
		"email":  "ana.maria@example.com",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var actualizado models.Usuario
	db.First(&actualizado, usuario.ID)
	assert.Equal(t, "Ana María", actualizado.Nombre)
	assert.Equal(t, "ana.maria@example.com", actualizado.Email)
}

func TestAdminRequierePermisos(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	_, tokenCliente := crearUsuario(t, db, "cliente@example.com", models.RolCliente)
	_, tokenAdmin := crearUsuario(t, db, "admin@example.com", models.RolAdmin)

	w := doRequest(t, r, "GET", "/api/admin/usuarios", nil, tokenCliente)
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Permisos de administrador requeridos", resp["message"])

	w = doRequest(t, r, "GET", "/api/admin/usuarios", nil, tokenAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCambioDeRolSoloSuperadmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	objetivo, _ := crearUsuario(t, db, "cliente@example.com", models.RolCliente)
	_, tokenAdmin := crearUsuario(t, db, "admin@example.com", models.RolAdmin)
	_, tokenSuper := crearUsuario(t, db, "super@example.com", models.RolSuperAdmin)

	ruta := fmt.Sprintf("/api/admin/usuarios/%d", objetivo.ID)

	// Un admin puede desactivar, pero no promover
	w := doRequest(t, r, "PUT", ruta, map[string]interface{}{"rol": 1}, tokenAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Permisos de superadministrador requeridos", resp["message"])

	w = doRequest(t, r, "PUT", ruta, map[string]interface{}{"is_active": false}, tokenAdmin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "PUT", ruta, map[string]interface{}{"rol": 1}, tokenSuper)
	assert.Equal(t, http.StatusOK, w.Code)

	var actualizado models.Usuario
	db.First(&actualizado, objetivo.ID)
	assert.Equal(t, models.RolAdmin, actualizado.Rol)
	assert.False(t, actualizado.IsActive)
}

func TestNoPuedeEliminarsePropiaCuenta(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	admin, tokenAdmin := crearUsuario(t, db, "admin@example.com", models.RolAdmin)
	otro, _ := crearUsuario(t, db, "otro@example.com", models.RolCliente)

	w := doRequest(t, r, "DELETE", fmt.Sprintf("/api/admin/usuarios/%d", admin.ID), nil, tokenAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "No puedes eliminar tu propia cuenta", resp["message"])

	w = doRequest(t, r, "DELETE", fmt.Sprintf("/api/admin/usuarios/%d", otro.ID), nil, tokenAdmin)
	assert.Equal(t, http.StatusOK, w.Code)

	var cuantos int64
	db.Model(&models.Usuario{}).Count(&cuantos)
	assert.Equal(t, int64(1), cuantos)
}

func TestEliminarUsuarioInexistente(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)
	_, tokenAdmin := crearUsuario(t, db, "admin@example.com", models.RolAdmin)

	w := doRequest(t, r, "DELETE", "/api/admin/usuarios/999", nil, tokenAdmin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "Recurso no encontrado", resp["message"])
}

// tokenExpirado firma unas claims ya caducadas con la clave real.
func tokenExpirado(t *testing.T, usuario models.Usuario) string {
	t.Helper()
	claims := &utils.CustomClaims{
		UserID: usuario.ID,
		Email:  usuario.Email,
		Rol:    usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	firmado, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(utils.JWTSecret)
	if err != nil {
		t.Fatalf("no se pudo firmar el token expirado: %v", err)
	}
	return firmado
}
