// Package password implementa el hash de credenciales de la aplicación.
//
// El contrato es un digest SHA-256 hex determinista y SIN salt: dos
// contraseñas iguales producen el mismo hash. Es una debilidad conocida
// (ataque por rainbow table) que se preserva por compatibilidad con los
// hashes ya almacenados; endurecerlo cambiaría el formato en disco.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash devuelve el digest SHA-256 de password codificado en hex minúscula.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify indica si candidate produce exactamente storedHash.
func Verify(candidate, storedHash string) bool {
	digest := Hash(candidate)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
}
