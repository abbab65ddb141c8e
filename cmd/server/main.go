package main

import (
	"log"
	"strings"

	"saha-backend/internal/admin"
	"saha-backend/internal/audit"
	"saha-backend/internal/auth"
	"saha-backend/internal/config"
	"saha-backend/internal/database"
	"saha-backend/internal/inventory"
	"saha-backend/internal/models"
	"saha-backend/internal/notification"
	"saha-backend/internal/report"
	"saha-backend/internal/schedule"
	"saha-backend/internal/task"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Yönetici route'ları (super_admin + manager)
	mgmt := protected.Group("")
	mgmt.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleManager))

	// Kullanıcı yönetimi
	mgmt.Post("/admin/users", admin.CreateUserHandler())
	mgmt.Get("/admin/users", admin.ListUsersHandler())

	// Mağaza yönetimi
	mgmt.Post("/stores", admin.CreateStoreHandler())
	mgmt.Get("/stores/:id", admin.GetStoreHandler())
	mgmt.Put("/stores/:id", admin.UpdateStoreHandler())
	mgmt.Delete("/stores/:id", admin.DeleteStoreHandler())

	// Ürün & marka yönetimi
	mgmt.Post("/products", inventory.CreateProductHandler())
	mgmt.Put("/products/:id", inventory.UpdateProductHandler())
	mgmt.Delete("/products/:id", inventory.DeleteProductHandler())
	mgmt.Post("/products/bulk-import", inventory.BulkImportProductsHandler())
	mgmt.Post("/brands", inventory.CreateBrandHandler())
	mgmt.Delete("/brands/:id", inventory.DeleteBrandHandler())

	// Rota planları (yönetici tarafı)
	mgmt.Get("/route-schedules", schedule.ListRouteSchedulesHandler(cfg))
	mgmt.Post("/route-schedules", schedule.CreateRouteScheduleHandler())
	mgmt.Delete("/route-schedules/:id", schedule.DeleteRouteScheduleHandler())

	// Görev atama ve raporlar
	mgmt.Post("/tasks", task.CreateTaskHandler())
	mgmt.Get("/tasks", task.ListTasksHandler())
	mgmt.Get("/reports/visit-summary", report.VisitSummaryHandler(cfg))

	// Audit logs
	mgmt.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Ortak (auth gerektiren) route'lar

	protected.Get("/stores", admin.ListStoresHandler())
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/brands", inventory.ListBrandsHandler())

	// Saha temsilcisinin kendi planı ve ziyaret işaretleme
	protected.Get("/route-schedules/my", schedule.MyRouteSchedulesHandler(cfg))
	protected.Post("/route-schedules/:id/toggle-visit", schedule.ToggleVisitHandler())

	// Stok sayımları (ziyaret kanıtı olarak da işlenir)
	protected.Post("/snapshots", inventory.CreateStockSnapshotHandler())
	protected.Get("/snapshots", inventory.ListStockSnapshotsHandler())
	protected.Delete("/snapshots/:id", inventory.DeleteStockSnapshotHandler())
	protected.Get("/stock/current", inventory.CurrentStockHandler())

	// Görevler (temsilci tarafı)
	protected.Get("/tasks/my", task.MyTasksHandler())
	protected.Put("/tasks/:id/status", task.UpdateTaskStatusHandler())

	// Bildirimler
	protected.Get("/notifications", notification.ListNotificationsHandler())
	protected.Post("/notifications/:id/read", notification.MarkReadHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
