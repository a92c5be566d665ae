package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func loadProof(path string) (*service.ProofFile, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read proof file: %w", err)
	}
	return &service.ProofFile{Name: filepath.Base(path), Content: content}, nil
}

func splitSerials(raw string) []string {
	if raw == "" {
		return nil
	}
	serials := strings.Split(raw, ",")
	for i := range serials {
		serials[i] = strings.TrimSpace(serials[i])
	}
	return serials
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Acting user id")
	tenantFlag := flag.String("tenant", "", "Acting tenant id")
	roleFlag := flag.String("role", "", "Acting role")
	orderFlag := flag.String("order", "", "Order id to settle")
	receivedFlag := flag.String("received", "0", "Cash received from the customer")
	methodFlag := flag.String("method", "cash", "Payment method: cash, credit or bank")
	notesFlag := flag.String("notes", "", "Delivery notes")
	proofFlag := flag.String("proof", "", "Path to a proof-of-delivery photo")
	returnSerialsFlag := flag.String("return-serials", "", "Comma-separated serials of returned empties")
	returnCountFlag := flag.Int("return-count", 0, "Count of returned empties when serials are unknown")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	actor, err := common.ResolveActor(*userFlag, *tenantFlag, *roleFlag)
	if err != nil {
		zap.L().Fatal("Failed to resolve actor", zap.Error(err))
	}

	received, err := decimal.NewFromString(*receivedFlag)
	if err != nil {
		zap.L().Fatal("Invalid received amount", zap.String("value", *receivedFlag), zap.Error(err))
	}

	proof, err := loadProof(*proofFlag)
	if err != nil {
		zap.L().Fatal("Failed to load proof", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	err = services.Core.CompleteDelivery(ctx, actor, service.CompleteDeliveryParams{
		OrderId:         *orderFlag,
		ReceivedAmount:  received,
		PaymentMethod:   *methodFlag,
		Notes:           *notesFlag,
		Proof:           proof,
		ReturnedSerials: splitSerials(*returnSerialsFlag),
		ReturnedCount:   *returnCountFlag,
	})
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			zap.L().Fatal("Not enough stock on the truck",
				zap.Int("available", stockErr.Available),
				zap.Int("required", stockErr.Required))
		case errors.Is(err, service.ErrZeroStock):
			zap.L().Fatal("Truck is empty, load cylinders before settling")
		default:
			zap.L().Fatal("Failed to complete delivery", zap.Error(err))
		}
	}

	fmt.Printf("Order %s settled: received %s\n", *orderFlag, received.String())
}
