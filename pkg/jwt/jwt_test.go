package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/tienda-movil/pkg/jwt"
)

const (
	testSecret = "secreto-solo-para-tests"
	testIssuer = "tienda-movil-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "Cliente", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "Cliente", role)
}

func TestParse_RechazaFirmaConOtroSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "Administrador", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "un token firmado con otro secret debe ser rechazado")
}

func TestParse_RechazaTokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "Cliente", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe ser rechazado")
}

func TestGenerate_RequiereSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "Cliente", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_RechazaTokenMalformado(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
