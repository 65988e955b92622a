package testutils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pack/internal/alert"
	"pack/internal/code"
	"pack/internal/model"
	"pack/internal/session"
	"pack/internal/user"
)

// Calls counts method invocations on a fake.
type Calls struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *Calls) inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[name]++
}

// Count returns how often name was called.
func (c *Calls) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Total is the number of calls across every method.
func (c *Calls) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// SessionStore is an in-memory session.Store.
type SessionStore struct {
	Calls

	mu       sync.Mutex
	sessions map[string]model.Session

	FindErr   error
	DeleteErr error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]model.Session{}}
}

var _ session.Store = (*SessionStore)(nil)

func (s *SessionStore) Create(_ context.Context, sess *model.Session) error {
	s.inc("Create")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *SessionStore) Find(_ context.Context, token string) (*model.Session, error) {
	s.inc("Find")
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) DeleteByToken(_ context.Context, token string) error {
	s.inc("DeleteByToken")
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) DeleteAllForUser(_ context.Context, userID int) error {
	s.inc("DeleteAllForUser")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteUser(userID)
	return nil
}

func (s *SessionStore) Replace(_ context.Context, sess *model.Session) error {
	s.inc("Replace")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteUser(sess.UserID)
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *SessionStore) deleteUser(userID int) {
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
}

// Put seeds a session without counting a call.
func (s *SessionStore) Put(sess model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
}

// Has reports whether token is stored, without counting a call.
func (s *SessionStore) Has(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// ForUser lists the tokens userID holds.
func (s *SessionStore) ForUser(userID int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tokens []string
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// UserStore is an in-memory stand-in for user.Repository.
type UserStore struct {
	Calls

	mu       sync.Mutex
	nextID   int
	users    map[int]*model.User
	students map[int]*model.Student
	teachers map[int]*model.Teacher
	classes  []model.Class

	FindErr          error
	CreateStudentErr error
	CreateTeacherErr error
	DeleteErr        error
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:   1,
		users:    map[int]*model.User{},
		students: map[int]*model.Student{},
		teachers: map[int]*model.Teacher{},
	}
}

// Add stores u, assigning an ID when it has none.
func (s *UserStore) Add(u *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(u)
	return u
}

func (s *UserStore) add(u *model.User) {
	if u.ID == 0 {
		u.ID = s.nextID
	}
	if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
}

// AddStudent seeds a student profile.
func (s *UserStore) AddStudent(st *model.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.students[st.UserID] = &cp
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserStore) Get(id int) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *UserStore) Student(id int) (*model.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	return st, ok
}

func (s *UserStore) Teacher(id int) (*model.Teacher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teachers[id]
	return t, ok
}

func (s *UserStore) Classes() []model.Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Class(nil), s.classes...)
}

func (s *UserStore) FindByID(_ context.Context, id int) (*model.User, error) {
	s.inc("FindByID")
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	u, ok := s.Get(id)
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.inc("FindByUsername")
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *UserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.inc("ExistsByUsernameOrEmail")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) EmailInUse(_ context.Context, email string, exceptID int) (bool, error) {
	s.inc("EmailInUse")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.inc("Create")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrDuplicate
		}
	}
	u.ID = 0
	s.add(u)
	return nil
}

func (s *UserStore) Delete(_ context.Context, id int) error {
	s.inc("Delete")
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *UserStore) CreateStudent(_ context.Context, st *model.Student) error {
	s.inc("CreateStudent")
	if s.CreateStudentErr != nil {
		return s.CreateStudentErr
	}
	s.AddStudent(st)
	return nil
}

func (s *UserStore) CreateTeacher(_ context.Context, t *model.Teacher, classes []model.Class) error {
	s.inc("CreateTeacher")
	if s.CreateTeacherErr != nil {
		return s.CreateTeacherErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.teachers[t.UserID] = &cp
	for _, c := range classes {
		c.TeacherID = t.UserID
		s.classes = append(s.classes, c)
	}
	return nil
}

func (s *UserStore) FindStudent(_ context.Context, userID int) (*model.Student, error) {
	s.inc("FindStudent")
	st, ok := s.Student(userID)
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *UserStore) UpdateEmail(_ context.Context, id int, email string) error {
	s.inc("UpdateEmail")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != id {
			return user.ErrDuplicate
		}
	}
	u, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Email = email
	return nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id int, hash string) error {
	s.inc("UpdatePassword")
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *UserStore) TouchLastLogin(_ context.Context, id int, at time.Time) error {
	s.inc("TouchLastLogin")
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (s *UserStore) SetProgressEmails(_ context.Context, userID int, enabled bool) error {
	s.inc("SetProgressEmails")
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[userID]
	if !ok {
		return user.ErrNotFound
	}
	st.ProgressEmails = enabled
	return nil
}

// Alerter records every alert it is asked to send.
type Alerter struct {
	mu      sync.Mutex
	Details []alert.SignupRollback
}

func (a *Alerter) SignupRollback(_ context.Context, d alert.SignupRollback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Details = append(a.Details, d)
}

func (a *Alerter) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Details)
}

// Mailer records verification codes instead of sending them.
type Mailer struct {
	mu   sync.Mutex
	Sent map[string]string // address -> code
	Err  error
}

func (m *Mailer) SendVerificationCode(_ string, to string, code string, _ int) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Sent == nil {
		m.Sent = map[string]string{}
	}
	m.Sent[to] = code
	return nil
}

func (m *Mailer) CodeFor(address string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sent[address]
}

// CodeStore keeps verification codes in memory. Limit caps sends per user
// when set.
type CodeStore struct {
	Limit int

	mu    sync.Mutex
	codes map[string]string
	sends map[int]int
}

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: map[string]string{}, sends: map[int]int{}}
}

func (s *CodeStore) Allow(_ context.Context, userID int, _ string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends[userID]++
	return s.Limit <= 0 || s.sends[userID] <= s.Limit, nil
}

func codeKey(userID int, email string) string {
	return fmt.Sprintf("%d:%s", userID, email)
}

func (s *CodeStore) Save(_ context.Context, userID int, email, c string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[codeKey(userID, email)] = c
	return nil
}

func (s *CodeStore) Consume(_ context.Context, userID int, email, c string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[codeKey(userID, email)]
	if !ok {
		return code.ErrExpired
	}
	if stored != c {
		return code.ErrMismatch
	}
	delete(s.codes, codeKey(userID, email))
	return nil
}

func (s *CodeStore) TTL() time.Duration {
	return 10 * time.Minute
}
