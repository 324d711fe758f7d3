package auth

import "sync"

// session es el único slot de sesión del proceso: guarda el id del usuario
// autenticado, o nada. El usuario "actual" nunca se cachea como copia viva;
// siempre se re-consulta el store con este id.
type session struct {
	mu     sync.RWMutex
	userID *int64
}

func (s *session) set(id int64) {
	s.mu.Lock()
	s.userID = &id
	s.mu.Unlock()
}

func (s *session) clear() {
	s.mu.Lock()
	s.userID = nil
	s.mu.Unlock()
}

// current devuelve el id de la sesión activa y si existe.
func (s *session) current() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

// Flujos lógicos del controlador; cada uno admite una sola operación en
// vuelo a la vez.
const (
	flowLogin    = "login"
	flowRegister = "register"
	flowProfile  = "profile_update"
	flowDeletion = "account_deletion"
)

// flightGuard rechaza el doble-submit concurrente de un mismo flujo. Una
// segunda llamada mientras la primera está en vuelo devuelve false en begin.
type flightGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func newFlightGuard() *flightGuard {
	return &flightGuard{active: make(map[string]bool)}
}

func (g *flightGuard) begin(flow string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[flow] {
		return false
	}
	g.active[flow] = true
	return true
}

func (g *flightGuard) end(flow string) {
	g.mu.Lock()
	delete(g.active, flow)
	g.mu.Unlock()
}
