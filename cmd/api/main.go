package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "propledger-backend/internal/adapter/http"
	"propledger-backend/internal/adapter/middleware"
	"propledger-backend/internal/adapter/repository/mysql"
	"propledger-backend/internal/config"
	"propledger-backend/internal/infrastructure/cache"
	"propledger-backend/internal/infrastructure/db"
	acquisitionuc "propledger-backend/internal/usecase/acquisition"
	documentuc "propledger-backend/internal/usecase/document"
	invoiceuc "propledger-backend/internal/usecase/invoice"
	loanuc "propledger-backend/internal/usecase/loan"
	paymentuc "propledger-backend/internal/usecase/payment"
	propertyuc "propledger-backend/internal/usecase/property"
	purchaseuc "propledger-backend/internal/usecase/purchase"
	repaymentuc "propledger-backend/internal/usecase/repayment"
	sourceuc "propledger-backend/internal/usecase/source"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	props := mysql.NewPropertyRepository(gdb)
	purchases := mysql.NewPurchaseRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	invoices := mysql.NewInvoiceRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	sources := mysql.NewSourceRepository(gdb)
	documents := mysql.NewDocumentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	handlers := httpadp.Handlers{
		Health:      httpadp.NewHandler(),
		Properties:  httpadp.NewPropertyHandler(propertyuc.NewUsecase(props, uow)),
		Purchases:   httpadp.NewPurchaseHandler(purchaseuc.NewUsecase(purchases, props, uow)),
		Loans:       httpadp.NewLoanHandler(loanuc.NewUsecase(loans, uow)),
		Repayments:  httpadp.NewRepaymentHandler(repaymentuc.NewUsecase(repayments, uow)),
		Invoices:    httpadp.NewInvoiceHandler(invoiceuc.NewUsecase(invoices, uow)),
		Payments:    httpadp.NewPaymentHandler(paymentuc.NewUsecase(payments, uow)),
		Sources:     httpadp.NewSourceHandler(sourceuc.NewUsecase(sources, uow)),
		Documents:   httpadp.NewDocumentHandler(documentuc.NewUsecase(documents, uow)),
		Acquisition: httpadp.NewAcquisitionHandler(acquisitionuc.NewUsecase(uow)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e, handlers)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
