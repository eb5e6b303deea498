package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BersamaBelajar/gudang-pintar/internal/api/handlers"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, svc service.Service, m *metrics.Metrics) {
	systemHandler := handlers.NewSystemHandler(svc, m)
	r.GET("/health", systemHandler.HealthCheck)
	r.GET("/metrics", systemHandler.Metrics)

	// Email action links land here; the path lives outside /api/v1 because
	// it is what approvers click from their mail client.
	approvalHandler := handlers.NewApprovalHandler(svc)
	r.GET("/handle-email-approval", approvalHandler.HandleEmailApproval)

	api := r.Group("/api/v1")

	api.POST("/handle-approval", approvalHandler.HandleApproval)
	api.POST("/send-approval-email", approvalHandler.SendApprovalEmail)

	api.GET("/dashboard", systemHandler.Dashboard)

	noteHandler := handlers.NewDeliveryNoteHandler(svc)
	notes := api.Group("/delivery-notes")
	{
		notes.POST("", noteHandler.CreateDeliveryNote)
		notes.GET("", noteHandler.ListDeliveryNotes)
		notes.GET("/search", noteHandler.Search)
		notes.GET("/:id", noteHandler.GetDeliveryNote)
		notes.PUT("/:id", noteHandler.UpdateDeliveryNote)
		notes.DELETE("/:id", noteHandler.DeleteDeliveryNote)
		notes.PATCH("/:id/status", noteHandler.UpdateStatus)
		notes.GET("/:id/print", noteHandler.Print)
	}

	productHandler := handlers.NewProductHandler(svc)
	products := api.Group("/products")
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	stock := api.Group("/stock-transactions")
	{
		stock.POST("", productHandler.RecordStockTransaction)
		stock.GET("", productHandler.ListStockTransactions)
	}

	masterHandler := handlers.NewMasterDataHandler(svc)
	categories := api.Group("/categories")
	{
		categories.POST("", masterHandler.CreateCategory)
		categories.GET("", masterHandler.ListCategories)
		categories.PUT("/:id", masterHandler.UpdateCategory)
		categories.DELETE("/:id", masterHandler.DeleteCategory)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", masterHandler.CreateSupplier)
		suppliers.GET("", masterHandler.ListSuppliers)
		suppliers.PUT("/:id", masterHandler.UpdateSupplier)
		suppliers.DELETE("/:id", masterHandler.DeleteSupplier)
	}

	divisions := api.Group("/divisions")
	{
		divisions.POST("", masterHandler.CreateDivision)
		divisions.GET("", masterHandler.ListDivisions)
		divisions.PUT("/:id", masterHandler.UpdateDivision)
		divisions.DELETE("/:id", masterHandler.DeleteDivision)
	}

	levels := api.Group("/approval-levels")
	{
		levels.POST("", masterHandler.CreateApprovalLevel)
		levels.GET("", masterHandler.ListApprovalLevels)
		levels.PUT("/:id", masterHandler.UpdateApprovalLevel)
		levels.DELETE("/:id", masterHandler.DeleteApprovalLevel)
	}
}
