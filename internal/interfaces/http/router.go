package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/attachments"
	"github.com/thesarya/expense/internal/application/auth"
	"github.com/thesarya/expense/internal/application/category"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/application/expense"
	"github.com/thesarya/expense/internal/application/insights"
	"github.com/thesarya/expense/internal/application/inventory"
	"github.com/thesarya/expense/internal/application/reports"
	"github.com/thesarya/expense/internal/domain/entity"
)

// RouterDeps holds the dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ExpenseUC    *expense.UseCase
	InventoryUC  *inventory.UseCase
	InsightsUC   *insights.UseCase
	ReportsUC    *reports.UseCase
	CategoryUC   *category.UseCase
	AttachmentUC *attachments.UseCase // nil when no bucket is configured
	JWTSecret    string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Expenses
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/last", expenseHandler.GetLast)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Put("/:id", inventoryHandler.Update)
	invGroup.Delete("/:id", inventoryHandler.Delete)
	invGroup.Post("/:id/use", inventoryHandler.Use)
	invGroup.Post("/:id/damage", inventoryHandler.Damage)
	invGroup.Post("/:id/repair", inventoryHandler.Repair)
	invGroup.Post("/:id/quantity", inventoryHandler.SetQuantity)
	invGroup.Post("/:id/assign", inventoryHandler.Assign)

	// Insights (centre-scoped rollup)
	insightsHandler := NewInsightsHandler(deps.InsightsUC)
	protected.Get("/insights", insightsHandler.Get)

	// Dashboard (global rollup, admin only)
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleAdmin))
	dashboardHandler := NewDashboardHandler(deps.InsightsUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/balance-sheet", reportHandler.BalanceSheet)
	reportsGroup.Get("/balance-sheet.pdf", reportHandler.BalanceSheetPDF)
	reportsGroup.Get("/balance-sheet.xlsx", reportHandler.BalanceSheetXLSX)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Post("/:name/items", categoryHandler.AddItem)

	// Attachments (only when a bucket is configured)
	attachGroup := protected.Group("/attachments")
	if deps.AttachmentUC != nil {
		attachmentHandler := NewAttachmentHandler(deps.AttachmentUC)
		attachGroup.Post("/", attachmentHandler.Upload)
		attachGroup.Delete("/", attachmentHandler.Remove)
	} else {
		attachGroup.All("/", storageUnavailable)
	}
}

func storageUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code: "STORAGE_UNAVAILABLE", Message: "file storage is not configured",
	})
}
