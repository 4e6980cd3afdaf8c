package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/conveyancing-service/internal/domain"
)

type fakeMessageRepo struct {
	messages []domain.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) ListByCase(_ context.Context, caseID string) ([]domain.Message, error) {
	var result []domain.Message
	for _, msg := range f.messages {
		if msg.CaseID == caseID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, caseID, messageID string) (*domain.Message, error) {
	for _, msg := range f.messages {
		if msg.ID == messageID && msg.CaseID == caseID {
			copied := msg
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageRepo) Delete(_ context.Context, id string) error {
	for i, msg := range f.messages {
		if msg.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newMessageFixture(t *testing.T) (*MessageService, string) {
	t.Helper()
	caseRepo := newFakeCaseRepo()
	caseSvc := NewCaseService(caseRepo, nil)
	kase, err := caseSvc.Create(context.Background(), owner, domain.CasePatch{})
	require.NoError(t, err)
	return NewMessageService(&fakeMessageRepo{}, caseRepo, nil), kase.ID
}

func TestMessagePost_DenormalizesUsername(t *testing.T) {
	svc, caseID := newMessageFixture(t)

	msg, err := svc.Post(context.Background(), owner, caseID, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.Username)
	assert.Equal(t, owner.ID, msg.UserID)

	listed, err := svc.List(context.Background(), caseID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Hello", listed[0].Content)
	assert.Equal(t, "alice", listed[0].Username)
}

func TestMessagePost_UnknownCase(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepo{}, newFakeCaseRepo(), nil)

	_, err := svc.Post(context.Background(), owner, "missing", "Hello")
	assert.Equal(t, 404, httpStatus(t, err))
}

func TestMessagePost_EmptyContentRejected(t *testing.T) {
	svc, caseID := newMessageFixture(t)

	_, err := svc.Post(context.Background(), owner, caseID, "   ")
	assert.Equal(t, 400, httpStatus(t, err))
}

func TestMessageDelete_AuthorOrAdminOnly(t *testing.T) {
	svc, caseID := newMessageFixture(t)
	msg, err := svc.Post(context.Background(), owner, caseID, "Hello")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger, caseID, msg.ID)
	assert.Equal(t, 403, httpStatus(t, err))

	require.NoError(t, svc.Delete(context.Background(), owner, caseID, msg.ID))

	msg, err = svc.Post(context.Background(), owner, caseID, "again")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), admin, caseID, msg.ID))
}

func TestMessageDelete_UnknownMessage(t *testing.T) {
	svc, caseID := newMessageFixture(t)

	err := svc.Delete(context.Background(), owner, caseID, "missing")
	assert.Equal(t, 404, httpStatus(t, err))
}

func TestMessageDelete_WrongCaseNotFound(t *testing.T) {
	svc, caseID := newMessageFixture(t)
	msg, err := svc.Post(context.Background(), owner, caseID, "Hello")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), owner, "other-case", msg.ID)
	assert.Equal(t, 404, httpStatus(t, err))
}

func TestMessagePreview_RuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100)

	preview := messagePreview(long)
	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, messagePreviewRunes, len([]rune(preview)))

	assert.Equal(t, "short", messagePreview("short"))
}
