package dto

import "time"

// RegisterRequest entrada para registro local (password en texto, se hashea
// en el caso de uso).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=Cliente Administrador"`
}

// LoginRequest entrada para login local.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FederatedLoginRequest entrada para login con Google: el ID token emitido
// por el proveedor, ya autenticado del lado del cliente.
type FederatedLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest entrada para actualizar el nombre del perfil.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida de login (local o federado): token de sesión más el
// par (id, rol) que consume la UI.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse salida con mensaje de confirmación de una operación.
type MessageResponse struct {
	Message string `json:"message"`
}
