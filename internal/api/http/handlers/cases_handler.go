package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/conveyancing-service/internal/api/dto"
	"github.com/spec-kit/conveyancing-service/internal/auth"
	"github.com/spec-kit/conveyancing-service/internal/domain"
	"github.com/spec-kit/conveyancing-service/internal/service"
	apperrors "github.com/spec-kit/conveyancing-service/pkg/util"
)

// CasesHandler manages case endpoints.
type CasesHandler struct {
	service *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{service: caseService}
}

// Create POST /api/cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var patch domain.CasePatch
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	kase, err := h.service.Create(c.Context(), principal.User, patch)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": caseResponse(kase)})
}

// ListAll GET /api/cases.
func (h *CasesHandler) ListAll(c *fiber.Ctx) error {
	cases, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		item := caseResponse(&cases[i].Case)
		item.Username = cases[i].OwnerUsername
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMine GET /api/mycases.
func (h *CasesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	cases, err := h.service.ListMine(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		items = append(items, caseResponse(&cases[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	kase, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(kase)})
}

// Update PUT /api/cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var patch domain.CasePatch
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	kase, err := h.service.Update(c.Context(), principal.User, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(kase)})
}

// Delete DELETE /api/cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func caseResponse(kase *domain.Case) dto.CaseResponse {
	colors := kase.Colors
	if colors == nil {
		colors = map[string]any{}
	}
	return dto.CaseResponse{
		ID:          kase.ID,
		CreatedBy:   kase.CreatedBy,
		Date:        domain.FormatCaseDate(kase.Date),
		Active:      kase.Active,
		CaseDetails: kase.Details,
		Colors:      colors,
		CreatedAt:   kase.CreatedAt,
		UpdatedAt:   kase.UpdatedAt,
	}
}
