package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"pack/internal/model"
	"pack/internal/user"
	"pack/pkg/response"
)

type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type SessionIssuer interface {
	Issue(ctx context.Context, userID int, flow string) (*model.Session, error)
}

var dummyPassword = []byte("pack-dummy-password")

type Service struct {
	users  UserFinder
	issuer SessionIssuer
	// compared against when the username is unknown so both failures cost
	// one bcrypt comparison
	dummyHash []byte
}

func NewService(users UserFinder, issuer SessionIssuer, bcryptCost int) *Service {
	hash, err := bcrypt.GenerateFromPassword(dummyPassword, bcryptCost)
	if err != nil {
		logrus.WithError(err).WithField("cost", bcryptCost).Warn("bcrypt cost rejected, dummy hash uses default cost")
		hash, err = bcrypt.GenerateFromPassword(dummyPassword, bcrypt.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("login: dummy hash: %v", err))
		}
	}
	return &Service{users: users, issuer: issuer, dummyHash: hash}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*model.Session, *model.Identity, *response.BusinessError) {
	if err := s.validateRequest(req); err != nil {
		return nil, nil, err
	}

	u, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, user.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, nil, response.InvalidCredentials()
	}
	if err != nil {
		return nil, nil, response.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, response.InvalidCredentials()
	}

	sess, err := s.issuer.Issue(ctx, u.ID, "login")
	if err != nil {
		return nil, nil, response.Internal(err)
	}
	return sess, u.Identity(), nil
}

func (s *Service) validateRequest(req LoginRequest) *response.BusinessError {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return response.Invalid("Username and password are required")
	}
	return nil
}
