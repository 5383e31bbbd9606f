package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/audit"
	"github.com/jhoicas/CampoStock-api/internal/application/auth"
	"github.com/jhoicas/CampoStock-api/internal/application/custody"
	"github.com/jhoicas/CampoStock-api/internal/application/reconciliation"
	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/application/usecase"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	TechnicianUC   *usecase.TechnicianUseCase
	ModuleSvc      *usecase.ModuleService
	RegistryUC     *registry.UseCase
	AuditUC        *audit.UseCase
	ReconcileUC    *reconciliation.UseCase
	CustodyUC      *custody.UseCase
	SheetPDF       custody.SheetPDFGenerator
	SheetExcel     custody.SheetExcelGenerator
	InventoryExcel reconciliation.InventoryExcelGenerator
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token + módulo stock activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireModule(entity.ModuleStock, deps.ModuleSvc))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Serials (protegido): altas anidadas bajo el producto, resolución y
	// transición por unidad
	serialHandler := NewSerialHandler(deps.RegistryUC)
	products.Post("/:id/serials", serialHandler.Register)
	products.Get("/:id/serials", serialHandler.List)
	serials := protected.Group("/serials")
	serials.Get("/resolve", serialHandler.Resolve)
	serials.Post("/:id/transition", serialHandler.Transition)

	// Audits (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", auditHandler.Open)
	audits.Get("/", auditHandler.List)
	audits.Post("/warranty-batch", auditHandler.WarrantyBatch)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Post("/:id/resolve", auditHandler.Resolve)
	audits.Put("/:id/status", auditHandler.UpdateStatus)

	// Inventory (protegido): conteo físico y salud de stock
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReconcileUC, deps.InventoryExcel)
	invGroup.Post("/count", inventoryHandler.Count)
	invGroup.Get("/health", inventoryHandler.Health)
	invGroup.Get("/report.xlsx", inventoryHandler.ReportExcel)

	// Custody (protegido)
	custodyGroup := protected.Group("/custody")
	custodyHandler := NewCustodyHandler(deps.CustodyUC, deps.SheetPDF, deps.SheetExcel)
	custodyGroup.Post("/", custodyHandler.Issue)
	custodyGroup.Get("/", custodyHandler.ListActive)
	custodyGroup.Post("/:id/return", custodyHandler.Return)
	custodyGroup.Get("/technicians/:id/sheet.pdf", custodyHandler.SheetPDF)
	custodyGroup.Get("/technicians/:id/sheet.xlsx", custodyHandler.SheetExcel)

	// Technicians (protegido)
	technicians := protected.Group("/technicians")
	technicianHandler := NewTechnicianHandler(deps.TechnicianUC)
	technicians.Post("/", technicianHandler.Create)
	technicians.Get("/", technicianHandler.List)
	technicians.Put("/:id", technicianHandler.Update)
}
