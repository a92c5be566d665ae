package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/common"
	"github.com/theeabrarrr/raza-gas-erp/internal/config"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"

	"go.uber.org/zap"
)

func printRequests(requests []models.Transaction) {
	for i, r := range requests {
		prefix := common.BoxPrefix(i == len(requests)-1)
		fmt.Printf("%s %s  driver: %-14s amount: %10s  %s\n",
			prefix, common.FormatId(r.Id), common.FormatId(r.UserId),
			r.Amount.String(), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Acting user id")
	tenantFlag := flag.String("tenant", "", "Acting tenant id")
	roleFlag := flag.String("role", "", "Acting role")
	listFlag := flag.Bool("list", false, "List pending handovers and payments")
	approveFlag := flag.String("approve", "", "Approve the handover request with this transaction id")
	rejectFlag := flag.String("reject", "", "Reject the handover request with this transaction id")
	verifyFlag := flag.String("verify-payment", "", "Verify the payment with this transaction id")
	rejectPaymentFlag := flag.String("reject-payment", "", "Reject the payment with this transaction id")
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
	case *approveFlag != "":
		message, err := services.Core.ApproveHandover(ctx, actor, *approveFlag)
		if err != nil {
			zap.L().Fatal("Approval failed", zap.Error(err))
		}
		fmt.Println(message)

	case *rejectFlag != "":
		if err := services.Core.RejectHandover(ctx, actor, *rejectFlag); err != nil {
			zap.L().Fatal("Rejection failed", zap.Error(err))
		}
		fmt.Printf("Handover %s rejected, cylinders returned to the driver\n", common.FormatId(*rejectFlag))

	case *verifyFlag != "":
		if err := services.Core.VerifyPayment(ctx, actor, *verifyFlag); err != nil {
			zap.L().Fatal("Verification failed", zap.Error(err))
		}
		fmt.Printf("Payment %s verified\n", common.FormatId(*verifyFlag))

	case *rejectPaymentFlag != "":
		if err := services.Core.RejectPayment(ctx, actor, *rejectPaymentFlag); err != nil {
			zap.L().Fatal("Payment rejection failed", zap.Error(err))
		}
		fmt.Printf("Payment %s rejected\n", common.FormatId(*rejectPaymentFlag))

	case *listFlag:
		handovers, err := services.Core.ListPendingHandovers(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to list handovers", zap.Error(err))
		}
		payments, err := services.Core.ListPendingPayments(ctx, actor)
		if err != nil {
			zap.L().Fatal("Failed to list payments", zap.Error(err))
		}

		common.PrintHeader("PENDING HANDOVERS", common.DefaultWidth)
		printRequests(handovers)
		common.PrintHeader("PENDING PAYMENTS", common.DefaultWidth)
		printRequests(payments)
		common.PrintFooter(fmt.Sprintf("%d handovers, %d payments awaiting review",
			len(handovers), len(payments)), common.DefaultWidth)

	default:
		zap.L().Fatal("Provide -list, -approve, -reject, -verify-payment or -reject-payment")
	}
}
