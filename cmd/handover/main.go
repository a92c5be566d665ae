package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func printReceivers(users []models.User) {
	for i, u := range users {
		prefix := common.BoxPrefix(i == len(users)-1)
		fmt.Printf("%s %-20s %-10s %s\n", prefix, u.Name, u.Role, u.Id)
	}
}

func printCylinders(cylinders []models.Cylinder) {
	for i, c := range cylinders {
		prefix := common.BoxPrefix(i == len(cylinders)-1)
		fmt.Printf("%s %-12s %-8s %s\n", prefix, c.SerialNumber, c.Size, c.Status)
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Acting user id")
	tenantFlag := flag.String("tenant", "", "Acting tenant id")
	roleFlag := flag.String("role", "", "Acting role")
	amountFlag := flag.String("amount", "0", "Cash amount to hand over")
	serialsFlag := flag.String("serials", "", "Comma-separated cylinder serials to hand over")
	receiverFlag := flag.String("receiver", "", "Staff member receiving the handover")
	listReceiversFlag := flag.Bool("list-receivers", false, "List staff who can receive a handover")
	listAssetsFlag := flag.Bool("list-assets", false, "List the cylinders on the truck")
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

	if *listReceiversFlag {
		receivers, err := services.Core.ListReceivers(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to list receivers", zap.Error(err))
		}
		common.PrintHeader("HANDOVER RECEIVERS", common.DefaultWidth)
		printReceivers(receivers)
		common.PrintFooter(fmt.Sprintf("%d staff members", len(receivers)), common.DefaultWidth)
		return
	}

	if *listAssetsFlag {
		inventory, err := services.Core.GetDriverInventory(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to list truck inventory", zap.Error(err))
		}
		common.PrintHeader("TRUCK INVENTORY", common.DefaultWidth)
		printCylinders(inventory.Cylinders)
		common.PrintFooter(fmt.Sprintf("%d full, %d empty", inventory.FullCount, inventory.EmptyCount), common.DefaultWidth)
		return
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		zap.L().Fatal("Invalid amount", zap.String("value", *amountFlag), zap.Error(err))
	}

	var serials []string
	if *serialsFlag != "" {
		serials = strings.Split(*serialsFlag, ",")
		for i := range serials {
			serials[i] = strings.TrimSpace(serials[i])
		}
	}

	txn, err := services.Core.ProcessHandover(ctx, actor, service.HandoverParams{
		DepositAmount: amount,
		Serials:       serials,
		ReceiverId:    *receiverFlag,
	})
	if err != nil {
		var fundsErr *service.InsufficientFundsError
		if errors.As(err, &fundsErr) {
			zap.L().Fatal("Deposit exceeds wallet balance",
				zap.String("balance", fundsErr.Balance.String()))
		}
		zap.L().Fatal("Failed to submit handover", zap.Error(err))
	}

	fmt.Printf("Handover request %s submitted: Rs %s and %d cylinders awaiting approval\n",
		common.FormatId(txn.Id), amount.String(), len(serials))
}
