package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration and profile management. Token
// issuance lives in the HTTP layer; this service owns credentials and the
// user record itself.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Bio                *string
	AvatarURL          *string
	EmailNotifications *bool
	ShowEmailPublicly  *bool
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a user and its profile in one transaction. The username
// and email must both be free.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	profile := &models.UserProfile{EmailNotifications: true}
	if err := s.userRepo.Create(ctx, user, profile); err != nil {
		if isDuplicate(err) {
			return nil, models.NewValidationError("Username or email is already taken")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the user. Failures are
// deliberately indistinct: a wrong password and an unknown email produce the
// same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return user, nil
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "profile", userID)
	}
	return profile, nil
}

// UpdateProfile applies the provided fields to the user's own profile. Nil
// fields are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "profile", userID)
	}

	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}
	if in.EmailNotifications != nil {
		profile.EmailNotifications = *in.EmailNotifications
	}
	if in.ShowEmailPublicly != nil {
		profile.ShowEmailPublicly = *in.ShowEmailPublicly
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
