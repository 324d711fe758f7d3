// Package auth implementa el controlador de autenticación y sesión: registro,
// login local, login federado, perfil y baja de cuenta. Mantiene el único
// slot de sesión del proceso; toda vista del "usuario actual" se deriva
// re-consultando el store de usuarios con ese id.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/tienda-movil/internal/application/dto"
	"github.com/tu-usuario/tienda-movil/internal/domain"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
	"github.com/tu-usuario/tienda-movil/internal/domain/repository"
	"github.com/tu-usuario/tienda-movil/pkg/jwt"
	"github.com/tu-usuario/tienda-movil/pkg/logger"
	"github.com/tu-usuario/tienda-movil/pkg/password"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// UseCase casos de uso de autenticación y sesión.
type UseCase struct {
	users   repository.UserRepository
	jwtCfg  JWTConfig
	log     *logger.Logger
	session session
	flight  *flightGuard
}

// NewUseCase construye el controlador de auth.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{
		users:  users,
		jwtCfg: jwtCfg,
		log:    log,
		flight: newFlightGuard(),
	}
}

// Login verifica email/contraseña contra el store. En éxito fija la sesión y
// devuelve token más (id, rol). Cualquier fallo de credenciales produce el
// mismo mensaje genérico: el motivo real (usuario inexistente vs. contraseña
// incorrecta) solo se distingue en el log.
func (uc *UseCase) Login(ctx context.Context, email, passwordRaw string) (*dto.LoginResponse, error) {
	if !uc.flight.begin(flowLogin) {
		return nil, domain.ErrOperationInFlight
	}
	defer uc.flight.end(flowLogin)

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("login: fallo consultando el store")
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !password.Verify(passwordRaw, user.HashedPassword) {
		reason := "contraseña incorrecta"
		if user == nil {
			reason = "usuario no encontrado"
		}
		uc.log.Debug().Str("email", email).Str("reason", reason).Msg("login local fallido")
		return nil, domain.ErrInvalidCredentials
	}

	uc.session.set(user.ID)
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login local exitoso")
	return uc.loginResponse(user)
}

// Register valida y crea una cuenta local. La validación corta en el primer
// fallo, en orden: campos no vacíos, formato de email, largo de contraseña.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !uc.flight.begin(flowRegister) {
		return nil, domain.ErrOperationInFlight
	}
	defer uc.flight.end(flowRegister)

	if isBlank(in.Name) || isBlank(in.Email) || isBlank(in.Password) || isBlank(in.Role) {
		return nil, domain.ErrFieldsRequired
	}
	if !emailRe.MatchString(in.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrPasswordTooShort
	}

	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Str("email", in.Email).Msg("registro: fallo consultando el store")
		return nil, domain.ErrRegistrationFailed
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	user := &entity.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: password.Hash(in.Password),
		Role:           in.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := uc.users.Create(ctx, user)
	if err != nil {
		uc.log.Error().Err(err).Str("email", in.Email).Msg("registro: insert falló")
		return nil, domain.ErrRegistrationFailed
	}
	if id == entity.NoID {
		// El insert fue ignorado: otro registro ganó la carrera por el email.
		uc.log.Warn().Str("email", in.Email).Msg("registro: insert ignorado por conflicto")
		return nil, domain.ErrRegistrationFailed
	}

	uc.log.Info().Int64("user_id", id).Str("email", in.Email).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// UpdateProfileName persiste una copia del usuario actual con el nombre
// reemplazado. Requiere sesión activa.
func (uc *UseCase) UpdateProfileName(ctx context.Context, newName string) (string, error) {
	if !uc.flight.begin(flowProfile) {
		return "", domain.ErrOperationInFlight
	}
	defer uc.flight.end(flowProfile)

	userID, ok := uc.session.current()
	if !ok {
		return "", domain.ErrNoActiveUser
	}
	if isBlank(newName) {
		return "", domain.ErrBlankName
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("perfil: fallo consultando el store")
		return "", fmt.Errorf("actualizar perfil: %w", err)
	}
	if user == nil {
		return "", domain.ErrNoActiveUser
	}

	updated := *user
	updated.Name = newName
	updated.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, &updated); err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("perfil: update falló")
		return "", fmt.Errorf("actualizar perfil: %w", err)
	}

	uc.log.Info().Int64("user_id", userID).Str("name", newName).Msg("nombre de perfil actualizado")
	return fmt.Sprintf("Nombre actualizado correctamente a '%s'", newName), nil
}

// Logout limpia la sesión incondicionalmente. No toca la persistencia.
func (uc *UseCase) Logout() {
	uc.session.clear()
	uc.log.Debug().Msg("sesión cerrada")
}

// DeleteCurrentAccount elimina la cuenta de la sesión activa. Con 0 filas
// afectadas (el registro ya no existía) la sesión igual se limpia, para no
// dejar un id colgando a una cuenta inexistente, y se reporta el error no
// fatal.
func (uc *UseCase) DeleteCurrentAccount(ctx context.Context) error {
	if !uc.flight.begin(flowDeletion) {
		return domain.ErrOperationInFlight
	}
	defer uc.flight.end(flowDeletion)

	userID, ok := uc.session.current()
	if !ok {
		return domain.ErrNoActiveUser
	}

	rows, err := uc.users.DeleteByID(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("baja de cuenta: delete falló")
		return fmt.Errorf("eliminar cuenta: %w", err)
	}
	uc.session.clear()
	if rows == 0 {
		uc.log.Warn().Int64("user_id", userID).Msg("baja de cuenta: el registro ya no existía")
		return domain.ErrAccountNotDeleted
	}

	uc.log.Info().Int64("user_id", userID).Msg("cuenta eliminada")
	return nil
}

// HandleFederatedLogin reconcilia una identidad externa ya autenticada contra
// la tabla local por email. Una identidad federada sola NUNCA crea cuenta
// local: el registro local es el único camino de alta.
func (uc *UseCase) HandleFederatedLogin(ctx context.Context, email, displayName string) (*dto.LoginResponse, error) {
	if !uc.flight.begin(flowLogin) {
		return nil, domain.ErrOperationInFlight
	}
	defer uc.flight.end(flowLogin)

	if isBlank(email) {
		uc.log.Warn().Msg("login federado: el proveedor no entregó email")
		return nil, domain.ErrFederatedEmailMissing
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("login federado: fallo consultando el store")
		return nil, fmt.Errorf("login federado: %w", err)
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Str("display_name", displayName).
			Msg("login federado: email sin cuenta local")
		return nil, domain.ErrFederatedNotRegistered
	}

	uc.session.set(user.ID)
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login federado exitoso")
	return uc.loginResponse(user)
}

// CurrentUser devuelve el usuario de la sesión activa, re-leyendo el store.
// (nil, nil) cuando no hay sesión.
func (uc *UseCase) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := uc.session.current()
	if !ok {
		return nil, nil
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usuario actual: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// CurrentUserID expone el id de la sesión activa (para logging y handlers).
func (uc *UseCase) CurrentUserID() (int64, bool) {
	return uc.session.current()
}

func (uc *UseCase) loginResponse(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
