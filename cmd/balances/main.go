package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/service"

	"go.uber.org/zap"
)

func printCustomers(customers []models.Customer) {
	for i, c := range customers {
		prefix := common.BoxPrefix(i == len(customers)-1)
		fmt.Printf("%s %-24s %-14s owes: %12s\n",
			prefix, c.Name, c.Phone, c.CurrentBalance.String())
	}
}

func printDashboard(stats *service.DashboardStats) {
	fmt.Printf("│  Company cash:      %12s\n", stats.CompanyCash.String())
	fmt.Printf("│  Active drivers:    %12d\n", stats.ActiveDrivers)
	fmt.Printf("│  Total cylinders:   %12d\n", stats.TotalCylinders)
	fmt.Printf("│  Empty cylinders:   %12d\n", stats.EmptyCylinders)
	fmt.Printf("│  In warehouse:      %12d\n", stats.WarehouseStock)
	fmt.Printf("└  Distributed:       %12d\n", stats.DistributedStock)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Acting user id")
	tenantFlag := flag.String("tenant", "", "Acting tenant id")
	roleFlag := flag.String("role", "", "Acting role")
	dashboardFlag := flag.Bool("dashboard", false, "Show the company dashboard instead of outstanding balances")
	driverFlag := flag.Bool("driver", false, "Show the acting driver's wallet and stock figures")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	actor, err := common.ResolveActor(*userFlag, *tenantFlag, *roleFlag)
	if err != nil {
		zap.L().Fatal("Failed to resolve actor", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	switch {
	case *dashboardFlag:
		stats, err := services.Core.GetDashboardStats(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to gather dashboard stats", zap.Error(err))
		}
		common.PrintHeader("COMPANY DASHBOARD", common.DefaultWidth)
		printDashboard(stats)
		common.PrintFooter("Dashboard complete", common.DefaultWidth)

	case *driverFlag:
		stats, err := services.Core.GetDriverStats(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to gather driver stats", zap.Error(err))
		}
		common.PrintHeader("DRIVER SUMMARY", common.DefaultWidth)
		fmt.Printf("│  Wallet balance:  %12s\n", stats.WalletBalance.String())
		fmt.Printf("│  Empties on hand: %12d\n", stats.EmptiesOnHand)
		fmt.Printf("└  Open orders:     %12d\n", stats.PendingOrders)
		common.PrintFooter("Driver summary complete", common.DefaultWidth)

	default:
		customers, err := services.Core.ListOutstandingBalances(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to list outstanding balances", zap.Error(err))
		}
		common.PrintHeader("OUTSTANDING BALANCES", common.DefaultWidth)
		printCustomers(customers)
		common.PrintFooter(fmt.Sprintf("%d customers with open tabs", len(customers)), common.DefaultWidth)
	}
}
