package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente       = "Cliente"
	RoleAdministrador = "Administrador"
)

// NoID es el id centinela que devuelve el store cuando un insert fue
// ignorado silenciosamente por conflicto (email duplicado).
const NoID int64 = 0

// User representa una cuenta local de la tienda.
// HashedPassword guarda el digest hex de la contraseña, nunca el texto plano.
type User struct {
	ID             int64
	Name           string
	Email          string // único a nivel de store
	HashedPassword string
	Role           string // Cliente | Administrador
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin indica si la cuenta tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrador
}
