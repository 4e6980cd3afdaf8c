package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/conveyancing-service/internal/domain"
	"github.com/spec-kit/conveyancing-service/internal/events"
	"github.com/spec-kit/conveyancing-service/internal/repository"
	apperrors "github.com/spec-kit/conveyancing-service/pkg/util"
)

// CaseService owns case lifecycle and the ownership/admin authorization rules.
type CaseService struct {
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
}

// NewCaseService builds the service.
func NewCaseService(cases repository.CaseRepository, dispatcher events.Dispatcher) *CaseService {
	return &CaseService{cases: cases, dispatcher: dispatcher}
}

// Create persists a new case owned by the caller. The activity flag defaults
// to true when unspecified; a malformed date is stored as absent.
func (s *CaseService) Create(ctx context.Context, owner *domain.User, patch domain.CasePatch) (*domain.Case, error) {
	kase := &domain.Case{
		ID:        uuid.NewString(),
		CreatedBy: owner.ID,
		Active:    true,
		Colors:    map[string]any{},
	}
	patch.Apply(kase)

	if err := s.cases.Create(ctx, kase); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCaseCreated, kase.ID, owner.ID, events.CaseCreatedPayload{
		Reference: kase.Details.Reference,
		Property:  kase.Details.Property,
	})
	return kase, nil
}

// ListAll returns every case with the owner's username joined in. Available
// to any authenticated caller; no ownership filtering.
func (s *CaseService) ListAll(ctx context.Context) ([]domain.CaseWithOwner, error) {
	return s.cases.ListAll(ctx)
}

// ListMine returns only cases owned by the requester.
func (s *CaseService) ListMine(ctx context.Context, requester *domain.User) ([]domain.Case, error) {
	return s.cases.ListByOwner(ctx, requester.ID)
}

// Get returns the case or a not-found error.
func (s *CaseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	kase, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", nil)
		}
		return nil, err
	}
	return kase, nil
}

// Update merges the submitted fields over the stored case. Only the owner or
// an admin may update; createdBy never changes.
func (s *CaseService) Update(ctx context.Context, requester *domain.User, id string, patch domain.CasePatch) (*domain.Case, error) {
	kase, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(requester, kase) {
		return nil, apperrors.NewForbidden("not allowed to modify this case")
	}

	patch.Apply(kase)
	if err := s.cases.Update(ctx, kase); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventCaseUpdated, kase.ID, requester.ID, nil)
	return kase, nil
}

// Delete removes a case permanently. Its messages go with it via the store's
// cascade rule. A non-admin non-owner is refused before existence is
// revealed, matching the public contract.
func (s *CaseService) Delete(ctx context.Context, requester *domain.User, id string) error {
	kase, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if requester.IsAdmin {
				return apperrors.NewNotFound("case", nil)
			}
			return apperrors.NewForbidden("not allowed to delete this case")
		}
		return err
	}
	if !canModify(requester, kase) {
		return apperrors.NewForbidden("not allowed to delete this case")
	}

	if err := s.cases.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("case", nil)
		}
		return err
	}

	s.publish(ctx, events.EventCaseDeleted, id, requester.ID, events.CaseDeletedPayload{
		Reference: kase.Details.Reference,
	})
	return nil
}

func canModify(requester *domain.User, kase *domain.Case) bool {
	return requester.IsAdmin || kase.CreatedBy == requester.ID
}

func (s *CaseService) publish(ctx context.Context, eventType events.EventType, caseID, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		CaseID:  caseID,
		ActorID: actorID,
		Payload: payload,
	})
}
