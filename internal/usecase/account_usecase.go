package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

const defaultTrustScore = 100

type AccountUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewAccountUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *AccountUseCase {
	return &AccountUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

func (uc *AccountUseCase) Signup(ctx context.Context, input SignupInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email already exists
	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already registered", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	// The repository assigns the id.
	user := &entity.User{
		Email:          email,
		Name:           input.Name,
		TrustScore:     defaultTrustScore,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup for the same email can pass the lookup above.
		if errors.Is(err, errors.CodeConflict) {
			return nil, errors.BadRequest("Email already registered", err)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	logger.Info("Registered user %s (%s)", user.ID, user.Email)
	return user, nil
}

// Login exchanges form credentials for a bearer token. Unknown email and wrong password
// are reported identically.
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*entity.AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, errors.BadRequest("Incorrect email or password", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logger.Debug("Password mismatch for %s", email)
		return nil, errors.BadRequest("Incorrect email or password", nil)
	}

	token, _, err := uc.tokens.Issue(user.Email)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &entity.AuthToken{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to its user.
func (uc *AccountUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	subject, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, errors.Unauthorized("Could not validate credentials", err)
	}
	user, err := uc.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		return nil, errors.Unauthorized("Could not validate credentials", err)
	}
	return user, nil
}

func (uc *AccountUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

// SeedDemoAccount creates the demo seller when no account exists yet and returns it.
// It returns nil when users are already present.
func (uc *AccountUseCase) SeedDemoAccount(ctx context.Context, email, password string) (*entity.User, error) {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to count users", err)
	}
	if count > 0 {
		return nil, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}
	user := &entity.User{
		ID:             "u1",
		Email:          strings.ToLower(email),
		Name:           "Alex Rivera",
		TrustScore:     92,
		WalletBalance:  45000,
		EscrowBalance:  12500,
		Avatar:         "https://i.pravatar.cc/150?u=u1",
		HashedPassword: string(hashed),
		CreatedAt:      time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create demo user", err)
	}
	logger.Info("Seeded demo account %s", user.Email)
	return user, nil
}
