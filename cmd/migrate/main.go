// Aplica las migraciones SQL de ./migrations contra la base configurada.
// Uso: go run ./cmd/migrate [up|down]
package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/tu-usuario/tienda-movil/pkg/config"
	"github.com/tu-usuario/tienda-movil/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	m, err := migrate.New("file://migrations", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("crear migrador")
	}
	defer m.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatal().Str("arg", direction).Msg("dirección desconocida, use up o down")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("direction", direction).Msg("aplicar migraciones")
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("sin cambios pendientes")
		return
	}
	log.Info().Str("direction", direction).Msg("migraciones aplicadas")
}
