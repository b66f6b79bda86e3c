package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// CreateMemberRequest is the admin's new-member form.
type CreateMemberRequest struct {
	Email            string
	FullName         string
	PhoneNumber      *string
	MembershipTier   string
	MembershipNumber *string
	Role             string
	Password         string // admins only
}

type MemberService interface {
	Get(ctx context.Context, id string) (*repository.Member, error)
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*repository.Member, error)
	Create(ctx context.Context, req CreateMemberRequest) (*repository.Member, error)
	Update(ctx context.Context, member *repository.Member) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) Get(ctx context.Context, id string) (*repository.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*repository.Member, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.memberRepo.FindAll(ctx, includeInactive, limit, offset)
}

func (s *memberService) Create(ctx context.Context, req CreateMemberRequest) (*repository.Member, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.FullName == "" {
		return nil, ErrInvalidInput
	}

	tier := strings.ToLower(req.MembershipTier)
	if tier == "" {
		tier = types.TierInnerCircle
	}
	if !types.IsValidMembershipTier(tier) {
		return nil, ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = types.RoleMember
	}
	if role != types.RoleMember && role != types.RoleAdmin {
		return nil, ErrInvalidInput
	}

	member := &repository.Member{
		Email:            email,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		MembershipTier:   tier,
		MembershipNumber: req.MembershipNumber,
		Role:             role,
	}

	// Only admins carry a password; members authenticate by invitation email
	if role == types.RoleAdmin {
		if req.Password == "" {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		member.PasswordHash = &hashStr
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) Update(ctx context.Context, member *repository.Member) error {
	existing, err := s.memberRepo.FindByID(ctx, member.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if !types.IsValidMembershipTier(member.MembershipTier) {
		return ErrInvalidInput
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *memberService) SetActive(ctx context.Context, id string, active bool) error {
	existing, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.memberRepo.SetActive(ctx, id, active)
}

// Delete removes a member and all dependent records.
func (s *memberService) Delete(ctx context.Context, id string) error {
	existing, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.memberRepo.DeleteCascade(ctx, id)
}
