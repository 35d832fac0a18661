package usecase

import (
	"context"
	"time"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists syncs the authenticated principal into the local users
// table on first sight, defaulting new accounts to the applicant role.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if existing != nil && err == nil {
		return nil // Already synced
	}

	if user.Role == "" {
		user.Role = domain.RoleApplicant
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return u.userRepo.Create(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies partial changes to the caller's own profile. Role
// changes only switch between recruiter and applicant; admin is assigned
// out of band.
func (u *authUsecase) UpdateProfile(ctx context.Context, id string, upd domain.UserProfileUpdate) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FullName != nil {
		user.FullName = upd.FullName
	}
	if upd.PhotoURL != nil {
		user.PhotoURL = upd.PhotoURL
	}
	if upd.ResumeURL != nil {
		user.ResumeURL = upd.ResumeURL
	}
	if upd.Role != nil {
		if *upd.Role != domain.RoleRecruiter && *upd.Role != domain.RoleApplicant {
			return nil, apperror.BadRequest("Role must be recruiter or applicant")
		}
		if user.Role == domain.RoleAdmin {
			return nil, apperror.Forbidden("Admin role cannot be changed here")
		}
		user.Role = *upd.Role
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListApplicants returns every applicant account, for recruiters composing
// interview invitations and outreach.
func (u *authUsecase) ListApplicants(ctx context.Context, callerRole string) ([]domain.User, error) {
	if callerRole != domain.RoleRecruiter && callerRole != domain.RoleAdmin {
		return nil, apperror.Forbidden("Only recruiters can list applicants")
	}
	return u.userRepo.ListByRole(ctx, domain.RoleApplicant)
}
