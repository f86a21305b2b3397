// cmd/contas/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/handlers"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/config"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/auth"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/contas"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

func main() {
	logger := responses.InitLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuração inválida: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.NewPostgres(ctx, cfg.DatabaseURL, logger)
	cancel()
	if err != nil {
		log.Fatal("Falha ao conectar no banco: ", err)
	}
	defer store.Close()

	contasService := contas.NewService(store, logger)
	authService := auth.NewService(store, []byte(cfg.JWTSecret), logger)

	if err := authService.SeedAdmin(context.Background(), cfg.AdminPassword); err != nil {
		log.Fatal("Falha ao garantir o usuário admin: ", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	contasHandler := handlers.NewContasHandler(contasService)
	importHandler := handlers.NewImportHandler(contasService)
	conciliacaoHandler := handlers.NewConciliacaoHandler(contasService)
	dashboardHandler := handlers.NewDashboardHandler(contasService)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)

		autenticado := apiV1.Group("", authHandler.RequireAuth())
		{
			autenticado.GET("/contas", contasHandler.List)
			autenticado.POST("/contas", contasHandler.Create)
			autenticado.PATCH("/contas/:id", contasHandler.Update)
			autenticado.DELETE("/contas/:id", contasHandler.Delete)
			autenticado.DELETE("/contas", contasHandler.DeleteAll)
			autenticado.POST("/contas/import", importHandler.ImportContas)

			autenticado.GET("/aprovacoes", contasHandler.RelatorioAprovacoes)
			autenticado.POST("/aprovacoes", contasHandler.Aprovar)
			autenticado.DELETE("/aprovacoes/:id", contasHandler.ReverterAprovacao)

			autenticado.GET("/pagamentos", contasHandler.ListPagamentos)
			autenticado.POST("/pagamentos", contasHandler.RegistrarPagamento)

			autenticado.GET("/fornecedores", contasHandler.ListFornecedores)
			autenticado.GET("/categorias", contasHandler.ListCategorias)

			autenticado.GET("/extrato", importHandler.ListExtrato)
			autenticado.POST("/extrato/import", importHandler.ImportExtrato)

			autenticado.POST("/conciliacao/sugestoes", conciliacaoHandler.Sugestoes)
			autenticado.POST("/conciliacao/confirmar", conciliacaoHandler.Confirmar)

			autenticado.GET("/dashboard", dashboardHandler.Get)

			admin := autenticado.Group("", authHandler.RequireAdmin())
			{
				admin.GET("/users", authHandler.ListUsers)
				admin.POST("/users", authHandler.AddUser)
				admin.DELETE("/users/:username", authHandler.RemoveUser)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "contas-service"})
	})

	log.Printf("🚀 Contas Service (Go) iniciado e escutando na porta %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de contas: ", err)
	}
}
