package commands

import (
	"math/rand"
	"time"

	"github.com/beetlebot/cheepnow/internal/adapters/mock"
	"github.com/beetlebot/cheepnow/internal/config"
	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/beetlebot/cheepnow/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	cfg      *config.Config
	catalog  *mock.Catalog
	searcher *core.Searcher
}

func loadConfig(cmd *cobra.Command) *config.Config {
	seed, _ := cmd.Flags().GetInt64("seed")
	env, _ := cmd.Flags().GetString("env")
	return config.Load().WithSeed(seed).WithEnv(env)
}

func buildApp(cfg *config.Config) *app {
	catalog := mock.DefaultCatalog()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := mock.NewFlightGenerator(catalog, rand.New(rand.NewSource(seed)), nil)

	return &app{
		cfg:      cfg,
		catalog:  catalog,
		searcher: core.NewSearcher(gen, catalog, nil),
	}
}

func InitLogging(cmd *cobra.Command) error {
	return logging.Init(string(loadConfig(cmd).Env))
}

func CloseLogging() {
	_ = logging.Close()
}

func jsonOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err != nil || v
}
