package class

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pack/internal/model"
	"pack/pkg/response"
)

// attempts before giving up on a unique join code
const joinCodeAttempts = 5

type Store interface {
	ListForTeacher(ctx context.Context, teacherID int) ([]Summary, error)
	ListForStudent(ctx context.Context, studentID int) ([]Summary, error)
	Create(ctx context.Context, c *model.Class) error
	FindByJoinCode(ctx context.Context, code string) (*model.Class, error)
	AddMember(ctx context.Context, classID, studentID int) error
}

type ClassService struct {
	store    Store
	joinCode func() (string, error)
}

func NewClassService(store Store) *ClassService {
	return &ClassService{store: store, joinCode: GenerateJoinCode}
}

func (s *ClassService) List(ctx context.Context, id *model.Identity) ([]Summary, *response.BusinessError) {
	var (
		out []Summary
		err error
	)
	if id.Role == model.RoleTeacher {
		out, err = s.store.ListForTeacher(ctx, id.UserID)
	} else {
		out, err = s.store.ListForStudent(ctx, id.UserID)
	}
	if err != nil {
		return nil, response.Internal(err)
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

func (s *ClassService) Create(ctx context.Context, id *model.Identity, req CreateClassRequest) (*Summary, *response.BusinessError) {
	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Name == "" || len(req.Name) > 100 {
		return nil, response.Invalid("Class name must be 1-100 characters")
	}
	if req.Subject == "" {
		return nil, response.Invalid("Subject is required")
	}
	if req.YearGroup != 0 && (req.YearGroup < 7 || req.YearGroup > 13) {
		return nil, response.Invalid("Year group must be between 7 and 13")
	}

	for i := 0; i < joinCodeAttempts; i++ {
		code, err := s.joinCode()
		if err != nil {
			return nil, response.Internal(err)
		}
		c := &model.Class{
			TeacherID: id.UserID,
			Name:      req.Name,
			Subject:   req.Subject,
			YearGroup: req.YearGroup,
			JoinCode:  code,
		}
		err = s.store.Create(ctx, c)
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return nil, response.Internal(err)
		}
		return &Summary{ID: c.ID, Name: c.Name, Subject: c.Subject, YearGroup: c.YearGroup, JoinCode: c.JoinCode}, nil
	}
	return nil, response.Internal(fmt.Errorf("no free join code after %d attempts", joinCodeAttempts))
}

func (s *ClassService) Join(ctx context.Context, id *model.Identity, code string) (*Summary, *response.BusinessError) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, err := s.store.FindByJoinCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, response.NotFound("No class has that join code")
	}
	if err != nil {
		return nil, response.Internal(err)
	}

	err = s.store.AddMember(ctx, c.ID, id.UserID)
	if errors.Is(err, ErrAlreadyMember) {
		return nil, response.Conflict("You are already in this class")
	}
	if err != nil {
		return nil, response.Internal(err)
	}
	return &Summary{ID: c.ID, Name: c.Name, Subject: c.Subject, YearGroup: c.YearGroup}, nil
}
