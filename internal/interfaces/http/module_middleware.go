package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
)

// ModuleChecker resuelve si una empresa tiene un módulo activo.
type ModuleChecker interface {
	HasActiveModule(ctx context.Context, companyID, module string) (bool, error)
}

// RequireModule bloquea la ruta si la empresa no tiene el módulo contratado
// activo. Usar después de AuthMiddleware.
func RequireModule(module string, checker ModuleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_COMPANY", Message: "empresa no identificada"})
		}
		active, err := checker.HasActiveModule(c.Context(), companyID, module)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error verificando módulos"})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MODULE_INACTIVE", Message: "módulo no contratado o inactivo"})
		}
		return c.Next()
	}
}
