package register

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"pack/internal/alert"
	"pack/internal/metrics"
	"pack/internal/model"
	"pack/internal/user"
	"pack/pkg/response"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

const (
	maxClasses = 10
	// bcrypt rejects longer input
	maxPasswordBytes = 72
	// varchar(100) columns: first name, surname, subject, class name
	maxNameLength = 100
)

var titles = map[string]bool{"Mr": true, "Mrs": true, "Miss": true, "Ms": true, "Mx": true, "Dr": true}

type UserStore interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int) error
	CreateStudent(ctx context.Context, s *model.Student) error
	CreateTeacher(ctx context.Context, t *model.Teacher, classes []model.Class) error
}

type SessionIssuer interface {
	Issue(ctx context.Context, userID int, flow string) (*model.Session, error)
}

type RegisterService struct {
	users      UserStore
	issuer     SessionIssuer
	alerter    alert.Alerter
	bcryptCost int
	joinCode   func() (string, error)
	now        func() time.Time
}

func NewRegisterService(users UserStore, issuer SessionIssuer, alerter alert.Alerter, bcryptCost int, joinCode func() (string, error)) *RegisterService {
	return &RegisterService{
		users:      users,
		issuer:     issuer,
		alerter:    alerter,
		bcryptCost: bcryptCost,
		joinCode:   joinCode,
		now:        time.Now,
	}
}

func (s *RegisterService) Register(ctx context.Context, req SignupRequest) (*model.Session, *model.Identity, *response.BusinessError) {
	req = normalize(req)
	if err := s.validateRequest(req); err != nil {
		return nil, nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, nil, response.Internal(err)
	}
	if exists {
		return nil, nil, response.Conflict("Username or email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, response.Internal(fmt.Errorf("hash password: %w", err))
	}

	newUser := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return nil, nil, response.Conflict("Username or email already in use")
		}
		return nil, nil, response.Internal(err)
	}

	if step, err := s.createProfile(ctx, newUser.ID, req); err != nil {
		s.compensate(ctx, newUser, step, err)
		return nil, nil, response.Internal(fmt.Errorf("%s: %w", step, err))
	}

	sess, err := s.issuer.Issue(ctx, newUser.ID, "signup")
	if err != nil {
		return nil, nil, response.Internal(err)
	}
	return sess, newUser.Identity(), nil
}

func (s *RegisterService) createProfile(ctx context.Context, userID int, req SignupRequest) (string, error) {
	switch req.Role {
	case model.RoleStudent:
		return "create student profile", s.users.CreateStudent(ctx, &model.Student{
			UserID:         userID,
			YearGroup:      req.YearGroup,
			KeyStage:       model.KeyStageFor(req.YearGroup),
			ProgressEmails: req.ProgressEmails,
		})
	default:
		classes := make([]model.Class, 0, len(req.Classes))
		for _, name := range req.Classes {
			code, err := s.joinCode()
			if err != nil {
				return "generate join code", err
			}
			classes = append(classes, model.Class{
				Name:     name,
				Subject:  req.Subject,
				JoinCode: code,
			})
		}
		return "create teacher profile", s.users.CreateTeacher(ctx, &model.Teacher{
			UserID:  userID,
			Title:   req.Title,
			Surname: req.Surname,
			Subject: req.Subject,
		}, classes)
	}
}

// compensate removes the half-created user and alerts once, whether or not
// the delete worked.
func (s *RegisterService) compensate(ctx context.Context, u *model.User, step string, cause error) {
	ctx = context.WithoutCancel(ctx)

	rollbackErr := s.users.Delete(ctx, u.ID)
	outcome := "ok"
	if rollbackErr != nil {
		outcome = "failed"
	}
	metrics.SignupRollbacks.WithLabelValues(outcome).Inc()

	s.alerter.SignupRollback(ctx, alert.SignupRollback{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		Step:        step,
		Cause:       cause,
		RollbackErr: rollbackErr,
		At:          s.now(),
	})
}

func normalize(req SignupRequest) SignupRequest {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Title = strings.TrimSpace(req.Title)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Subject = strings.TrimSpace(req.Subject)
	var classes []string
	for _, c := range req.Classes {
		if c = strings.TrimSpace(c); c != "" {
			classes = append(classes, c)
		}
	}
	req.Classes = classes
	return req
}

func (s *RegisterService) validateRequest(req SignupRequest) *response.BusinessError {
	if req.Username == "" {
		return response.Invalid("Username is required")
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		return response.Invalid("Username must be 3-50 characters")
	}
	if !usernameRegex.MatchString(req.Username) {
		return response.Invalid("Username may only contain letters, digits and underscores")
	}

	if req.Email == "" {
		return response.Invalid("Email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return response.Invalid("Email address is not valid")
	}

	if len(req.Password) < 8 || len(req.Password) > maxPasswordBytes {
		return response.Invalid("Password must be 8-72 characters")
	}
	if !upperRegex.MatchString(req.Password) || !lowerRegex.MatchString(req.Password) || !digitRegex.MatchString(req.Password) {
		return response.Invalid("Password needs an upper-case letter, a lower-case letter and a digit")
	}

	if req.FirstName == "" {
		return response.Invalid("First name is required")
	}
	if tooLong(req.FirstName) {
		return response.Invalid("First name must be at most 100 characters")
	}

	switch req.Role {
	case model.RoleStudent:
		if req.YearGroup < 7 || req.YearGroup > 13 {
			return response.Invalid("Year group must be between 7 and 13")
		}
	case model.RoleTeacher:
		if !titles[req.Title] {
			return response.Invalid("Title is not valid")
		}
		if req.Surname == "" {
			return response.Invalid("Surname is required")
		}
		if tooLong(req.Surname) {
			return response.Invalid("Surname must be at most 100 characters")
		}
		if req.Subject == "" {
			return response.Invalid("Subject is required")
		}
		if tooLong(req.Subject) {
			return response.Invalid("Subject must be at most 100 characters")
		}
		if len(req.Classes) > maxClasses {
			return response.Invalid(fmt.Sprintf("At most %d classes can be created at signup", maxClasses))
		}
		for _, name := range req.Classes {
			if tooLong(name) {
				return response.Invalid("Class names must be at most 100 characters")
			}
		}
	default:
		return response.Invalid("Role must be Student or Teacher")
	}

	return nil
}

// tooLong counts characters, as Postgres varchar does.
func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > maxNameLength
}
