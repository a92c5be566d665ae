package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"go.uber.org/zap"
)

func printOrders(orders []models.Order) {
	for i, o := range orders {
		prefix := common.BoxPrefix(i == len(orders)-1)
		fmt.Printf("%s %-14s %-10s total: %10s  received: %10s  (%s)\n",
			prefix, o.FriendlyId, o.Status,
			o.TotalAmount.String(), o.AmountReceived.String(),
			common.FormatId(o.Id))
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Acting user id")
	tenantFlag := flag.String("tenant", "", "Acting tenant id")
	roleFlag := flag.String("role", "", "Acting role")
	ordersFlag := flag.String("orders", "", "Comma-separated order ids to start")
	listFlag := flag.Bool("list", false, "List the driver's open orders instead of starting a trip")
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

	if *listFlag {
		orders, err := services.Store.ListDriverOrders(ctx, actor,
			[]string{models.OrderStatusAssigned, models.OrderStatusOnTrip})
		if err != nil {
			zap.L().Fatal("Failed to list orders", zap.Error(err))
		}

		common.PrintHeader("OPEN ORDERS", common.DefaultWidth)
		printOrders(orders)
		common.PrintFooter(fmt.Sprintf("%d open orders", len(orders)), common.DefaultWidth)
		return
	}

	if *ordersFlag == "" {
		zap.L().Fatal("Provide -orders or use -list")
	}
	orderIds := strings.Split(*ordersFlag, ",")
	for i := range orderIds {
		orderIds[i] = strings.TrimSpace(orderIds[i])
	}

	started, err := services.Core.StartTrip(ctx, actor, orderIds)
	if err != nil {
		zap.L().Fatal("Failed to start trip", zap.Error(err))
	}

	fmt.Printf("Trip started: %d of %d orders now on trip\n", started, len(orderIds))
}
