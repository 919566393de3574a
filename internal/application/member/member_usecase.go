package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "ai-chart-analyst/internal/domain/member"
)

// Repository 是後台會員管理需要的完整存取介面。
type Repository interface {
	Create(ctx context.Context, m domain.Member) (domain.Member, error)
	Update(ctx context.Context, m domain.Member) error
	Delete(ctx context.Context, uid string) error
	FindByUID(ctx context.Context, uid string) (domain.Member, error)
	FindByEmail(ctx context.Context, email string) (domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
}

// CodeHasher 將明碼激活碼轉為雜湊後入庫。
type CodeHasher interface {
	Hash(plain string) (string, error)
}

// AdminUseCase 提供後台的會員 CRUD。所有操作皆假設呼叫端已通過管理員授權。
type AdminUseCase struct {
	repo   Repository
	hasher CodeHasher
	now    func() time.Time
}

func NewAdminUseCase(repo Repository, hasher CodeHasher) *AdminUseCase {
	return &AdminUseCase{repo: repo, hasher: hasher, now: time.Now}
}

// CreateInput 為新增會員的輸入。ActivationCode 為明碼，僅在此處經手。
type CreateInput struct {
	Name           string
	Email          string
	ActivationCode string
	IsAdmin        bool
	MembershipType string
	PlanType       string
	ExpiresAt      *time.Time
	PictureURL     string
}

func (uc *AdminUseCase) Create(ctx context.Context, in CreateInput) (domain.Member, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return domain.Member{}, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(in.ActivationCode) == "" {
		return domain.Member{}, fmt.Errorf("activation code is required")
	}

	hashed, err := uc.hasher.Hash(in.ActivationCode)
	if err != nil {
		return domain.Member{}, fmt.Errorf("hash activation code: %w", err)
	}

	m := domain.Member{
		UID:            uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		ActivationCode: hashed,
		IsAdmin:        in.IsAdmin,
		IsActive:       true,
		MembershipType: in.MembershipType,
		PlanType:       in.PlanType,
		JoinDate:       uc.now().UTC(),
		ExpiresAt:      in.ExpiresAt,
		PictureURL:     in.PictureURL,
	}
	if m.MembershipType == "" {
		m.MembershipType = domain.MembershipLifetime
	}
	if err := m.Validate(); err != nil {
		return domain.Member{}, err
	}
	return uc.repo.Create(ctx, m)
}

// UpdateInput 只更新有提供的欄位，nil 表示保持原值。
type UpdateInput struct {
	Name           *string
	IsAdmin        *bool
	IsActive       *bool
	MembershipType *string
	PlanType       *string
	ExpiresAt      *time.Time
	ClearExpiry    bool
	ActivationCode *string
	PictureURL     *string
}

func (uc *AdminUseCase) Update(ctx context.Context, uid string, in UpdateInput) (domain.Member, error) {
	m, err := uc.repo.FindByUID(ctx, uid)
	if err != nil {
		return domain.Member{}, err
	}

	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.IsAdmin != nil {
		m.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if in.MembershipType != nil {
		m.MembershipType = *in.MembershipType
	}
	if in.PlanType != nil {
		m.PlanType = *in.PlanType
	}
	if in.ClearExpiry {
		m.ExpiresAt = nil
	} else if in.ExpiresAt != nil {
		m.ExpiresAt = in.ExpiresAt
	}
	if in.PictureURL != nil {
		m.PictureURL = *in.PictureURL
	}
	if in.ActivationCode != nil && strings.TrimSpace(*in.ActivationCode) != "" {
		hashed, err := uc.hasher.Hash(*in.ActivationCode)
		if err != nil {
			return domain.Member{}, fmt.Errorf("hash activation code: %w", err)
		}
		m.ActivationCode = hashed
	}

	if err := m.Validate(); err != nil {
		return domain.Member{}, err
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

func (uc *AdminUseCase) Delete(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("uid is required")
	}
	return uc.repo.Delete(ctx, uid)
}

func (uc *AdminUseCase) List(ctx context.Context) ([]domain.Member, error) {
	return uc.repo.List(ctx)
}
