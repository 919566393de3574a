package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-chart-analyst/internal/domain/member"
)

// ErrInvalidCredentials 刻意不區分「帳號不存在」與「激活碼錯誤」，避免帳號列舉。
var ErrInvalidCredentials = errors.New("invalid email or activation code")

// MemberRepository 存取會員。
type MemberRepository interface {
	FindByEmail(ctx context.Context, email string) (member.Member, error)
	FindByUID(ctx context.Context, uid string) (member.Member, error)
	TouchLastLogin(ctx context.Context, uid string, at time.Time) error
}

// CodeHasher 驗證激活碼。
type CodeHasher interface {
	Compare(hashed, plain string) bool
}

// TokenIssuer 簽發/驗證 token。
type TokenIssuer interface {
	Issue(ctx context.Context, m member.Member) (string, error)
}

// Role 表示會員角色，由 IsAdmin 旗標導出。
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RoleOf 回傳會員對應的角色。
func RoleOf(m member.Member) Role {
	if m.IsAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// Permission 表示功能權限。
type Permission string

const (
	PermAnalyze          Permission = "analysis:run"
	PermHistoryRead      Permission = "history:read"
	PermHistoryDelete    Permission = "history:delete"
	PermTestimonialWrite Permission = "testimonial:write"
	PermMemberManage     Permission = "member:manage"
)

// RolePermissions v1 簡化權限表。
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermAnalyze,
		PermHistoryRead,
		PermHistoryDelete,
		PermTestimonialWrite,
		PermMemberManage,
	},
	RoleMember: {
		PermAnalyze,
		PermHistoryRead,
		PermHistoryDelete,
		PermTestimonialWrite,
	},
}

// ActivateUseCase 以 email 與激活碼驗證會員並簽發 token。
type ActivateUseCase struct {
	members MemberRepository
	hasher  CodeHasher
	tokens  TokenIssuer
	now     func() time.Time
}

func NewActivateUseCase(members MemberRepository, hasher CodeHasher, tokens TokenIssuer) *ActivateUseCase {
	return &ActivateUseCase{
		members: members,
		hasher:  hasher,
		tokens:  tokens,
		now:     time.Now,
	}
}

type ActivateInput struct {
	Email          string
	ActivationCode string
}

type ActivateResult struct {
	Member member.Member
	Token  string
}

func (uc *ActivateUseCase) Execute(ctx context.Context, input ActivateInput) (ActivateResult, error) {
	var out ActivateResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	code := strings.TrimSpace(input.ActivationCode)
	if email == "" || code == "" {
		return out, ErrInvalidCredentials
	}

	m, err := uc.members.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, fmt.Errorf("find member: %w", err)
	}
	if !uc.hasher.Compare(m.ActivationCode, code) {
		return out, ErrInvalidCredentials
	}
	if err := m.CanLogin(uc.now()); err != nil {
		return out, err
	}

	token, err := uc.tokens.Issue(ctx, m)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	// 登入時間只是輔助資訊，更新失敗不擋登入。
	if err := uc.members.TouchLastLogin(ctx, m.UID, uc.now().UTC()); err != nil {
		log.Printf("auth: touch last_login failed uid=%s err=%v", m.UID, err)
	}

	out.Member = m
	out.Token = token
	return out, nil
}

// Authorizer 檢查角色/權限。
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) HasPermission(role Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
