package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanfelipe/obras-api/internal/application/auth"
	"github.com/sanfelipe/obras-api/internal/application/expense"
	"github.com/sanfelipe/obras-api/internal/application/project"
	"github.com/sanfelipe/obras-api/internal/application/usecase"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProjectUC      *project.ProjectUseCase
	ExpenseUC      *expense.ExpenseUseCase
	NotificationUC *usecase.NotificationUseCase
	UserUC         *usecase.UserUseCase
	ReportUC       *usecase.ReportUseCase
	Tokens         *jwt.Manager
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (login y refresh públicos; register requiere rol con alta de usuarios)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/register",
		AuthMiddleware(deps.Tokens),
		RequireRole(entity.RoleModerador, entity.RoleAdminObra),
		authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.Tokens), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	// Obras
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", RequireRole(entity.RoleModerador), projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Post("/:projectId/assign",
		RequireRole(entity.RoleModerador, entity.RoleAdminObra), projectHandler.Assign)
	projects.Delete("/:projectId/assign/:userId",
		RequireRole(entity.RoleModerador, entity.RoleAdminObra), projectHandler.RemoveAssignment)
	projects.Get("/:projectId/team", projectHandler.Team)

	// Gastos
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Put("/:id/approve",
		RequireRole(entity.RoleModerador, entity.RoleAdminObra), expenseHandler.Approve)
	expenses.Put("/:id/reject",
		RequireRole(entity.RoleModerador, entity.RoleAdminObra), expenseHandler.Reject)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleModerador, entity.RoleAdminObra), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/deactivate", RequireRole(entity.RoleModerador), userHandler.Deactivate)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/expenses",
		RequireRole(entity.RoleModerador, entity.RoleContabilidad), reportHandler.Expenses)
}
