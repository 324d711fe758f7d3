package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-movil/internal/application/auth"
	"github.com/tu-usuario/tienda-movil/internal/application/dto"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
	"github.com/tu-usuario/tienda-movil/internal/domain"
)

// AuthHandler maneja registro, login (local y federado), perfil y baja de
// cuenta.
//
// Me, UpdateProfile y DeleteAccount operan sobre el slot de sesión único del
// proceso, no sobre el user_id del token: el servicio modela una sola sesión
// activa a la vez. Con varios clientes concurrentes, el último login define
// sobre qué cuenta actúan estas rutas, sea cual sea el token presentado.
type AuthHandler struct {
	uc       *auth.UseCase
	provider ports.IdentityProvider
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, provider ports.IdentityProvider) *AuthHandler {
	return &AuthHandler{uc: uc, provider: provider}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión local
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}

// GoogleLogin godoc
// @Summary      Iniciar sesión con Google
// @Description  Verifica el ID token de Google y reconcilia el email contra la tabla local. No crea cuentas.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FederatedLoginRequest  true  "id_token"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var in dto.FederatedLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.IDToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id_token es requerido"})
	}
	identity, err := h.provider.Verify(c.Context(), in.IDToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_ID_TOKEN", Message: "el token de Google no es válido"})
	}
	out, err := h.uc.HandleFederatedLogin(c.Context(), identity.Email, identity.DisplayName)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout()
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada."})
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.CurrentUser(c.Context())
	if err != nil {
		return authError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: domain.ErrNoActiveUser.Error()})
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar nombre de perfil
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	msg, err := h.uc.UpdateProfileName(c.Context(), in.Name)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// DeleteAccount godoc
// @Summary      Eliminar la cuenta actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteCurrentAccount(c.Context()); err != nil {
		return authError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Cuenta eliminada correctamente."})
}

// authError traduce errores de dominio a respuestas HTTP. Los errores no
// reconocidos nunca llegan crudos a la UI: se responde un mensaje genérico.
func authError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrNoActiveUser):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: err.Error()})
	case errors.Is(err, domain.ErrFederatedEmailMissing):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_EMAIL", Message: err.Error()})
	case errors.Is(err, domain.ErrFederatedNotRegistered):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_REGISTERED", Message: err.Error()})
	case errors.Is(err, domain.ErrAccountNotDeleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DELETED", Message: err.Error()})
	case errors.Is(err, domain.ErrOperationInFlight):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: err.Error()})
	case errors.Is(err, domain.ErrRegistrationFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "REGISTRATION_FAILED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Ocurrió un error. Inténtalo de nuevo."})
	}
}
