package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear una obra.
type CreateProjectRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
}

// ProjectResponse salida de una obra.
type ProjectResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Location              string          `json:"location"`
	Description           string          `json:"description"`
	Budget                decimal.Decimal `json:"budget"`
	CurrentSpent          decimal.Decimal `json:"currentSpent"`
	BudgetUsagePercentage decimal.Decimal `json:"budgetUsagePercentage"`
	IsBudgetExceeded      bool            `json:"isBudgetExceeded"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               *time.Time      `json:"endDate,omitempty"`
	Status                string          `json:"status"`
	CreatedBy             string          `json:"createdBy"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// AssignUserRequest entrada para asignar un usuario a una obra.
type AssignUserRequest struct {
	UserID        string `json:"userId"`
	RoleInProject string `json:"roleInProject"`
}

// AssignmentResponse salida de una asignación.
type AssignmentResponse struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"projectId"`
	UserID        string     `json:"userId"`
	RoleInProject string     `json:"roleInProject"`
	AssignedBy    string     `json:"assignedBy"`
	AssignedAt    time.Time  `json:"assignedAt"`
	RemovedAt     *time.Time `json:"removedAt,omitempty"`
	IsActive      bool       `json:"isActive"`
}

// TeamMemberResponse miembro del equipo de una obra (asignación + datos del usuario).
type TeamMemberResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	User       UserResponse       `json:"user"`
}
