package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/conveyancing-service/internal/report"
	"github.com/spec-kit/conveyancing-service/internal/service"
	apperrors "github.com/spec-kit/conveyancing-service/pkg/util"
)

// ReportsHandler serves the generated case report document.
type ReportsHandler struct {
	cases     *service.CaseService
	generator *report.Generator
}

// NewReportsHandler constructs handler.
func NewReportsHandler(caseService *service.CaseService, generator *report.Generator) *ReportsHandler {
	return &ReportsHandler{cases: caseService, generator: generator}
}

// Download GET /api/report/:id.
func (h *ReportsHandler) Download(c *fiber.Ctx) error {
	kase, err := h.cases.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	data, err := h.generator.Render(kase)
	if err != nil {
		if errors.Is(err, report.ErrTemplateMissing) {
			return apperrors.NewTemplateMissing()
		}
		return apperrors.NewInternalError(err)
	}

	c.Set(fiber.HeaderContentType, report.MimeTypeDocx)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+h.generator.Filename())
	return c.Send(data)
}
