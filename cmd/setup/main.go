package main

import (
	"context"
	"flag"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/database"
	"github.com/theeabrarrr/raza-gas-erp/internal/postgres"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	seedFlag := flag.Bool("seed", false, "Seed demo data (embedded backend only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	st, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	// The embedded backend applies its schema on open; Postgres needs an
	// explicit pass to install tables and the approval function.
	if pg, ok := st.(*postgres.Service); ok {
		if err := pg.InitSchema(ctx); err != nil {
			zap.L().Fatal("Failed to initialize schema", zap.Error(err))
		}
	}

	if *seedFlag || cfg.Database.SeedDemoData {
		db, ok := st.(*database.Service)
		if !ok {
			zap.L().Fatal("Demo seeding is only supported on the embedded backend")
		}

		zap.L().Info("Loading size catalog", zap.String("file", cfg.Catalog.SizesFile))
		sizes, err := config.LoadSizeCatalog(cfg.Catalog.SizesFile)
		if err != nil {
			zap.L().Fatal("Failed to load size catalog", zap.Error(err))
		}

		if err := db.SeedDemoData(ctx, sizes); err != nil {
			zap.L().Fatal("Failed to seed demo data", zap.Error(err))
		}

		zap.L().Info("Demo session",
			zap.String("tenant", database.DemoTenantId),
			zap.String("admin", database.DemoAdminId),
			zap.String("driver", database.DemoDriverId))
	}

	zap.L().Info("Setup complete", zap.String("backend", cfg.Backend))
}
