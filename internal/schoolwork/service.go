package schoolwork

import (
	"context"
	"errors"
	"strings"
	"time"

	"pack/internal/model"
	"pack/pkg/response"
)

const msgNotFound = "Schoolwork not found"

type Store interface {
	ListForStudent(ctx context.Context, studentID int) ([]model.Schoolwork, error)
	Create(ctx context.Context, w *model.Schoolwork) error
	SetCompleted(ctx context.Context, id, studentID int, at *time.Time) error
	Delete(ctx context.Context, id, studentID int) error
}

type SchoolworkService struct {
	store Store
	now   func() time.Time
}

func NewSchoolworkService(store Store) *SchoolworkService {
	return &SchoolworkService{store: store, now: time.Now}
}

func (s *SchoolworkService) Overview(ctx context.Context, studentID int) (*Overview, *response.BusinessError) {
	work, err := s.store.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, response.Internal(err)
	}
	out := Group(work, s.now())
	return &out, nil
}

func (s *SchoolworkService) Create(ctx context.Context, studentID int, req CreateRequest) (*Item, *response.BusinessError) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || len(req.Title) > 200 {
		return nil, response.Invalid("Title must be 1-200 characters")
	}
	if req.Due.IsZero() {
		return nil, response.Invalid("Due date is required")
	}

	w := &model.Schoolwork{
		StudentID:   studentID,
		Title:       req.Title,
		Subject:     strings.TrimSpace(req.Subject),
		Description: req.Description,
		Due:         req.Due,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, response.Internal(err)
	}
	item := toItem(w)
	return &item, nil
}

func (s *SchoolworkService) SetCompleted(ctx context.Context, studentID, id int, completed bool) *response.BusinessError {
	var at *time.Time
	if completed {
		now := s.now()
		at = &now
	}
	return s.ownerOnly(s.store.SetCompleted(ctx, id, studentID, at))
}

func (s *SchoolworkService) Delete(ctx context.Context, studentID, id int) *response.BusinessError {
	return s.ownerOnly(s.store.Delete(ctx, id, studentID))
}

// Another student's item looks exactly like a missing one.
func (s *SchoolworkService) ownerOnly(err error) *response.BusinessError {
	if errors.Is(err, ErrNotFound) {
		return response.NotFound(msgNotFound)
	}
	if err != nil {
		return response.Internal(err)
	}
	return nil
}
