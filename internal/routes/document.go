package routes

import (
	"refurb-tracker/internal/controllers"
	"refurb-tracker/pkg/middleware"
	"refurb-tracker/pkg/service"

	"github.com/labstack/echo/v4"
)

func runDocumentRouter(secureGroup *echo.Group, quoteCtrl *controllers.QuoteInvoiceController, orderCtrl *controllers.ClientOrderController, authMW *middleware.AuthMiddleware) {
	quotes := secureGroup.Group("/quotes-invoices")
	quotes.GET("", quoteCtrl.GetQuoteInvoices)
	quotes.POST("", quoteCtrl.CreateQuoteInvoice)
	quotes.GET("/:id", quoteCtrl.FindQuoteInvoice)
	quotes.PUT("/:id", quoteCtrl.UpdateQuoteInvoice)
	quotes.DELETE("/:id", quoteCtrl.DeleteQuoteInvoice, authMW.RequireRole(service.RoleAdmin))
	quotes.POST("/:id/document", quoteCtrl.UploadDocument)
	quotes.GET("/:id/document", quoteCtrl.DownloadDocument)

	orders := secureGroup.Group("/client-orders")
	orders.GET("", orderCtrl.GetClientOrders)
	orders.POST("", orderCtrl.CreateClientOrder)
	orders.GET("/:id", orderCtrl.FindClientOrder)
	orders.PUT("/:id", orderCtrl.UpdateClientOrder)
	orders.DELETE("/:id", orderCtrl.DeleteClientOrder)
}
