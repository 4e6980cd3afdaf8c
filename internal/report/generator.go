package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/spec-kit/conveyancing-service/internal/config"
	"github.com/spec-kit/conveyancing-service/internal/domain"
)

// MimeTypeDocx is the content type of the generated report document.
const MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ErrTemplateMissing reports an absent template asset.
var ErrTemplateMissing = errors.New("report template missing")

// Generator fills the fixed docx template with a case's field values. Every
// call re-renders from the template on disk; nothing is cached.
type Generator struct {
	templatePath string
	filename     string
}

// NewGenerator builds a generator from report configuration.
func NewGenerator(cfg config.ReportConfig) *Generator {
	return &Generator{templatePath: cfg.TemplatePath, filename: cfg.Filename}
}

// Filename returns the fixed download filename.
func (g *Generator) Filename() string {
	return g.filename
}

// Render substitutes the case's fields into the template placeholders and
// serializes the filled document.
func (g *Generator) Render(kase *domain.Case) ([]byte, error) {
	if _, err := os.Stat(g.templatePath); err != nil {
		return nil, ErrTemplateMissing
	}

	doc, err := docx.Open(g.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}

	if err := doc.ReplaceAll(Bindings(kase)); err != nil {
		return nil, fmt.Errorf("fill template: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return buf.Bytes(), nil
}

// Bindings flattens a case into placeholder name to value pairs. Detail
// fields bind under their JSON names so the template placeholders match the
// API field names. The color annotations are UI-only and never bound.
func Bindings(kase *domain.Case) docx.PlaceholderMap {
	bindings := docx.PlaceholderMap{
		"id":        kase.ID,
		"createdBy": kase.CreatedBy,
		"date":      domain.FormatCaseDate(kase.Date),
		"active":    strconv.FormatBool(kase.Active),
	}

	raw, err := json.Marshal(kase.Details)
	if err != nil {
		return bindings
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return bindings
	}
	for name, value := range fields {
		bindings[name] = value
	}
	return bindings
}
