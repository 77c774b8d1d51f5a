package http

import (
	"github.com/gofiber/fiber/v2"

	appbom "github.com/Macruz95/zadia-os-api/internal/application/bom"
	"github.com/Macruz95/zadia-os-api/internal/application/inventory"
	"github.com/Macruz95/zadia-os-api/internal/application/production"
	"github.com/Macruz95/zadia-os-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RawMaterialUC     *usecase.RawMaterialUseCase
	FinishedProductUC *usecase.FinishedProductUseCase
	BOMUC             *appbom.UseCase
	BOMPDFUC          *appbom.PDFUseCase
	RegisterMovement  *inventory.RegisterMovementUseCase
	MovementHistory   *inventory.MovementHistoryUseCase
	ExecuteProduction *production.ExecuteProductionUseCase
	JWTSecret         string
}

// Router registra las rutas de la API. Todas las rutas de negocio requieren
// Bearer Token; las escrituras de inventario y producción exigen además rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materias primas
	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/low-stock", materialHandler.ListLowStock)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", RequireRole("admin"), materialHandler.Delete)

	// Productos terminados
	products := protected.Group("/products")
	productHandler := NewFinishedProductHandler(deps.FinishedProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// BOMs
	boms := protected.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC, deps.BOMPDFUC)
	boms.Post("/", bomHandler.Create)
	boms.Get("/", bomHandler.ListByProduct)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Put("/:id", bomHandler.Update)
	boms.Delete("/:id", RequireRole("admin"), bomHandler.Deactivate)
	boms.Get("/:id/costs", bomHandler.Costs)
	boms.Get("/:id/unit-cost", bomHandler.UnitCost)
	boms.Get("/:id/validate-costs", bomHandler.ValidateCosts)
	boms.Get("/:id/feasibility", bomHandler.Feasibility)
	boms.Get("/:id/cost-sheet.pdf", bomHandler.CostSheet)
	products.Get("/:id/boms", bomHandler.ListByProductPath)

	// Movimientos de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementHistory)
	invGroup.Post("/movements", RequireRole("admin", "bodeguero", "produccion"), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)

	// Producción
	prodGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ExecuteProduction)
	prodGroup.Post("/execute", RequireRole("admin", "produccion"), productionHandler.Execute)
}
