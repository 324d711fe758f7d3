// Package google verifica ID tokens de Google Sign-In contra las claves
// públicas (JWKS) del proveedor. Es el único punto del sistema que habla con
// el proveedor federado; el resto de la aplicación consume el puerto
// ports.IdentityProvider y trata al proveedor como caja negra.
package google

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
)

const jwksURL = "https://www.googleapis.com/oauth2/v3/certs"

var _ ports.IdentityProvider = (*Verifier)(nil)

// Verifier implementa ports.IdentityProvider para Google.
type Verifier struct {
	audience   string
	httpClient *http.Client
	jwksURL    string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewVerifier construye el verificador. Con audience vacío no se valida el
// client id (solo razonable en development).
func NewVerifier(audience string) *Verifier {
	return &Verifier{
		audience:   audience,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		jwksURL:    jwksURL,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// Verify valida el ID token y devuelve la identidad federada (email, nombre).
func (v *Verifier) Verify(ctx context.Context, idToken string) (*ports.FederatedIdentity, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuedAt(),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	var claims idTokenClaims
	token, err := jwt.ParseWithClaims(idToken, &claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("id token sin kid")
		}
		return v.keyForKid(ctx, kid)
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("verificar id token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("id token inválido")
	}
	if iss := claims.Issuer; iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("issuer inesperado: %s", iss)
	}

	return &ports.FederatedIdentity{Email: claims.Email, DisplayName: claims.Name}, nil
}

// keyForKid devuelve la clave pública para el kid, refrescando el JWKS si la
// caché expiró o el kid es desconocido (rotación de claves de Google).
func (v *Verifier) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expiresAt)
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("kid %s no está en el JWKS", kid)
	}
	return key, nil
}

func (v *Verifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("descargar JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS respondió %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decodificar JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAPublicKey(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.expiresAt = time.Now().Add(24 * time.Hour)
	v.mu.Unlock()
	return nil
}

func parseRSAPublicKey(nStr, eStr string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nStr)
	if err != nil {
		return nil, fmt.Errorf("decodificar módulo: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eStr)
	if err != nil {
		return nil, fmt.Errorf("decodificar exponente: %w", err)
	}
	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
