package routes

import (
	"log"
	"net/http"
	"os"
	"strconv"

	_ "marketplace_pagamentos/docs" // This will be auto-generated
	"marketplace_pagamentos/internal/adapter/http/handlers"
	"marketplace_pagamentos/internal/adapter/persistence/repository"
	"marketplace_pagamentos/internal/infrastructure/database"
	"marketplace_pagamentos/internal/infrastructure/payments"
	"marketplace_pagamentos/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)

	maxInstallments := getenvInt("MAX_INSTALLMENTS", 12)
	schedule := usecase.ParseInterestSchedule(os.Getenv("INSTALLMENT_INTEREST_SCHEDULE"))
	installmentUseCase := usecase.NewInstallmentUseCase(schedule)
	log.Printf("[payment][routes] installment schedule loaded counts=%v max=%d", usecase.ScheduleCounts(schedule), maxInstallments)

	providers := buildProviderBindings()
	if len(providers) == 0 {
		log.Printf("[payment][routes] WARNING: no payment provider configured")
	}

	paymentUseCase := usecase.NewPaymentUseCase(
		paymentRepo,
		providers,
		installmentUseCase,
		maxInstallments,
		getenvDefault("DEFAULT_CURRENCY", "BRL"),
	)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	installmentHandler := handlers.NewInstallmentHandler(installmentUseCase, maxInstallments)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, installmentHandler)
}

// buildProviderBindings wires every provider whose configuration is
// present. Each binding owns its adapter plus an independent credential
// manager instance; a missing provider is logged and skipped so the
// service still serves the configured ones.
func buildProviderBindings() map[string]usecase.ProviderBinding {
	bindings := map[string]usecase.ProviderBinding{}

	cielo, err := payments.NewCieloGateway(os.Getenv("CIELO_BASE_URL"))
	if err != nil {
		log.Printf("[payment][routes] cielo gateway not configured: %v", err)
	} else {
		bindings[payments.ProviderCielo] = usecase.ProviderBinding{
			Adapter: cielo,
			Credentials: payments.NewMerchantKeyCredentials(
				payments.ProviderCielo,
				os.Getenv("CIELO_MERCHANT_ID"),
				os.Getenv("CIELO_MERCHANT_KEY"),
			),
		}
	}

	pix, err := payments.NewPixGateway(os.Getenv("PIX_BASE_URL"), os.Getenv("PIX_KEY"))
	if err != nil {
		log.Printf("[payment][routes] pix gateway not configured: %v", err)
	} else {
		bindings[payments.ProviderPix] = usecase.ProviderBinding{
			Adapter: pix,
			Credentials: payments.NewOAuthTokenManager(
				payments.ProviderPix,
				getenvDefault("PIX_TOKEN_URL", os.Getenv("PIX_BASE_URL")+"/oauth/token"),
				os.Getenv("PIX_CLIENT_ID"),
				os.Getenv("PIX_CLIENT_SECRET"),
			),
		}
	}

	mp, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("[payment][routes] mercado pago gateway not configured: %v", err)
	} else {
		bindings[payments.ProviderMercadoPago] = usecase.ProviderBinding{
			Adapter: mp,
			Credentials: payments.NewStaticTokenCredentials(
				payments.ProviderMercadoPago,
				os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			),
		}
	}

	return bindings
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
