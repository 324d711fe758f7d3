package ports

import "context"

// FederatedIdentity es el par (email, nombre visible) que entrega un
// proveedor de identidad externo ya autenticado.
type FederatedIdentity struct {
	Email       string
	DisplayName string
}

// IdentityProvider define el puerto de salida para el login federado. El
// proveedor es una caja negra: verifica la credencial externa (un ID token)
// y devuelve la identidad, o error si la credencial no es válida. La
// aplicación nunca inicia pasos del protocolo del proveedor.
type IdentityProvider interface {
	Verify(ctx context.Context, idToken string) (*FederatedIdentity, error)
}
