package user

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrInvalidToken = errors.New("invalid verification token")
)

// Mailer sends a templated transactional email. The checkout email client
// satisfies it; a nil mailer disables verification sends.
type Mailer interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

type Service struct {
	repo           Repository
	mailer         Mailer
	verifyTemplate string
	appBaseURL     string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithVerificationMail enables the signup verification email.
func (s *Service) WithVerificationMail(mailer Mailer, templateID, appBaseURL string) *Service {
	s.mailer = mailer
	s.verifyTemplate = templateID
	s.appBaseURL = appBaseURL
	return s
}

// Register creates an account with a hashed password and dispatches a
// verification email. A failed send is logged, never fatal: the account
// exists either way and verification can be re-triggered by support.
func (s *Service) Register(ctx context.Context, email, password, name, phone string) (User, error) {
	if len(password) < 8 {
		return User{}, ErrWeakPassword
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, User{
		Email:       email,
		Name:        name,
		Phone:       phone,
		Role:        RoleCustomer,
		Password:    string(hashed),
		VerifyToken: uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return User{}, err
	}

	s.sendVerification(ctx, created)
	return created, nil
}

// Authenticate checks the credentials against the stored bcrypt hash.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Verify consumes a verification token and marks the account verified.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}
	u, err := s.repo.GetByVerifyToken(ctx, token)
	if err != nil {
		return User{}, ErrInvalidToken
	}
	u.Verified = true
	u.VerifyToken = ""
	u.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, u.ID, u)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id string, name, phone *string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	u.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, id, u)
}

// Promote grants the admin role to an existing account.
func (s *Service) Promote(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, u.ID, u)
}

func (s *Service) sendVerification(ctx context.Context, u User) {
	if s.mailer == nil || s.verifyTemplate == "" {
		return
	}
	params := map[string]string{
		"user_email":  u.Email,
		"user_name":   u.Name,
		"verify_link": s.appBaseURL + "/api/v1/verify?token=" + u.VerifyToken,
	}
	if err := s.mailer.Send(ctx, s.verifyTemplate, params); err != nil {
		log.Printf("user: verification email to %s failed: %v", u.Email, err)
	}
}
