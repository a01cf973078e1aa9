package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/application/project"
)

// ProjectHandler maneja obras, asignaciones y equipos.
type ProjectHandler struct {
	uc *project.ProjectUseCase
}

// NewProjectHandler construye el handler de obras.
func NewProjectHandler(uc *project.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear obra
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "datos de la obra"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar obras visibles para el usuario
// @Tags         projects
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListVisible(c.UserContext(), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar usuario a una obra
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Param        body  body  dto.AssignUserRequest  true  "userId, roleInProject"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/assign [post]
func (h *ProjectHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(c.UserContext(), c.Params("projectId"), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveAssignment godoc
// @Summary      Quitar a un usuario de una obra (baja lógica de la asignación)
// @Tags         projects
// @Param        projectId  path  string  true  "ID de la obra"
// @Param        userId     path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/assign/{userId} [delete]
func (h *ProjectHandler) RemoveAssignment(c *fiber.Ctx) error {
	err := h.uc.RemoveAssignment(c.UserContext(), c.Params("projectId"), c.Params("userId"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Team godoc
// @Summary      Equipo activo de una obra
// @Tags         projects
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {array}  dto.TeamMemberResponse
// @Router       /api/projects/{projectId}/team [get]
func (h *ProjectHandler) Team(c *fiber.Ctx) error {
	out, err := h.uc.Team(c.UserContext(), c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
