package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/conveyancing-service/internal/config"
	"github.com/spec-kit/conveyancing-service/internal/domain"
)

func TestRender_TemplateMissing(t *testing.T) {
	gen := NewGenerator(config.ReportConfig{
		TemplatePath: filepath.Join(t.TempDir(), "does-not-exist.docx"),
		Filename:     "Weekly_Report.docx",
	})

	_, err := gen.Render(&domain.Case{ID: "case-1"})
	assert.ErrorIs(t, err, ErrTemplateMissing)
}

func TestBindings_FlattensCaseFields(t *testing.T) {
	date := domain.ParseCaseDate("12/3/2025")
	require.NotNil(t, date)

	kase := &domain.Case{
		ID:        "case-1",
		CreatedBy: "user-1",
		Date:      date,
		Active:    true,
		Details: domain.CaseDetails{
			Reference:          "REF-42",
			Property:           "12 Main Road",
			TitleDeedRequested: "1/2/2025",
		},
		Colors: map[string]any{"reference": "red"},
	}

	bindings := Bindings(kase)

	assert.Equal(t, "case-1", bindings["id"])
	assert.Equal(t, "12/3/2025", bindings["date"])
	assert.Equal(t, "true", bindings["active"])
	assert.Equal(t, "REF-42", bindings["reference"])
	assert.Equal(t, "12 Main Road", bindings["property"])
	assert.Equal(t, "1/2/2025", bindings["titleDeedRequested"])

	// every detail field binds, even when empty
	assert.Contains(t, bindings, "comments")
	assert.Equal(t, "", bindings["comments"])

	// color annotations are UI-only and never bound
	assert.NotContains(t, bindings, "colors")
}
