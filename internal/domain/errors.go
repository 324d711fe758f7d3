package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes son los que
// ve el usuario final, por eso están en español.
var (
	// Auth / sesión. ErrInvalidCredentials cubre tanto "usuario no existe"
	// como "contraseña incorrecta": el mensaje no distingue los casos para
	// no permitir enumeración de cuentas (internamente se loguea la razón).
	ErrInvalidCredentials = errors.New("Correo o contraseña incorrectos.")
	ErrEmailAlreadyExists = errors.New("Este correo electrónico ya está registrado.")
	ErrRegistrationFailed = errors.New("Error al registrar el usuario. Inténtalo de nuevo.")
	ErrNoActiveUser       = errors.New("No hay un usuario activo.")
	ErrAccountNotDeleted  = errors.New("No se pudo eliminar la cuenta o ya no existía.")
	ErrOperationInFlight  = errors.New("Ya hay una operación de este tipo en curso.")

	// Login federado: la identidad externa se reconcilia por email contra la
	// tabla local, nunca se auto-provisiona una cuenta.
	ErrFederatedEmailMissing  = errors.New("No se pudo obtener el email de Google.")
	ErrFederatedNotRegistered = errors.New("Usuario de Google no está registrado en nuestra base de datos.")

	// Validación de campos.
	ErrFieldsRequired   = errors.New("Todos los campos son obligatorios.")
	ErrInvalidEmail     = errors.New("Formato de correo inválido.")
	ErrPasswordTooShort = errors.New("La contraseña debe tener al menos 6 caracteres.")
	ErrBlankName        = errors.New("El nuevo nombre no puede estar vacío.")
	ErrInvalidPrice     = errors.New("Precio inválido.")

	// Recursos.
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrImageStore   = errors.New("Error al guardar la imagen.")
)

// IsValidation indica si err es un error de validación de entrada (bloquea
// la operación antes de tocar la persistencia).
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrFieldsRequired),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrBlankName),
		errors.Is(err, ErrInvalidPrice):
		return true
	}
	return false
}
