package member

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "ai-chart-analyst/internal/domain/member"
)

type fakeRepo struct {
	members map[string]domain.Member

	createdCode string
	findErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{members: map[string]domain.Member{}}
}

func (r *fakeRepo) Create(_ context.Context, m domain.Member) (domain.Member, error) {
	m.ID = int64(len(r.members) + 1)
	r.members[m.UID] = m
	r.createdCode = m.ActivationCode
	return m, nil
}

func (r *fakeRepo) Update(_ context.Context, m domain.Member) error {
	if _, ok := r.members[m.UID]; !ok {
		return domain.ErrNotFound
	}
	r.members[m.UID] = m
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, uid string) error {
	if _, ok := r.members[uid]; !ok {
		return domain.ErrNotFound
	}
	delete(r.members, uid)
	return nil
}

func (r *fakeRepo) FindByUID(_ context.Context, uid string) (domain.Member, error) {
	if r.findErr != nil {
		return domain.Member{}, r.findErr
	}
	m, ok := r.members[uid]
	if !ok {
		return domain.Member{}, domain.ErrNotFound
	}
	return m, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (domain.Member, error) {
	for _, m := range r.members {
		if m.Email == email {
			return m, nil
		}
	}
	return domain.Member{}, domain.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func TestAdminUseCase_Create(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAdminUseCase(repo, fakeHasher{})

	m, err := uc.Create(context.Background(), CreateInput{
		Name:           " Member One ",
		Email:          " Member@Example.COM ",
		ActivationCode: "plain-code",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if m.UID == "" {
		t.Error("UID not generated")
	}
	if m.Email != "member@example.com" {
		t.Errorf("Email = %q, want lowercased trimmed", m.Email)
	}
	if m.ActivationCode != "hashed:plain-code" {
		t.Error("activation code stored without hashing")
	}
	if !m.IsActive {
		t.Error("new member should be active")
	}
	if m.MembershipType != domain.MembershipLifetime {
		t.Errorf("MembershipType = %q, want lifetime default", m.MembershipType)
	}
}

func TestAdminUseCase_CreateRequiredFields(t *testing.T) {
	uc := NewAdminUseCase(newFakeRepo(), fakeHasher{})

	if _, err := uc.Create(context.Background(), CreateInput{Name: "X", ActivationCode: "c"}); err == nil {
		t.Error("Create without email should fail")
	}
	if _, err := uc.Create(context.Background(), CreateInput{Name: "X", Email: "x@example.com"}); err == nil {
		t.Error("Create without activation code should fail")
	}
}

func TestAdminUseCase_UpdatePartial(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAdminUseCase(repo, fakeHasher{})
	created, err := uc.Create(context.Background(), CreateInput{
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "plain-code",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newName := "Renamed"
	inactive := false
	got, err := uc.Update(context.Background(), created.UID, UpdateInput{
		Name:     &newName,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.IsActive {
		t.Error("IsActive not updated")
	}
	// 未提供的欄位保持原值
	if got.Email != "member@example.com" {
		t.Errorf("Email changed unexpectedly: %q", got.Email)
	}
	if got.ActivationCode != "hashed:plain-code" {
		t.Error("activation code changed without new code")
	}
}

func TestAdminUseCase_UpdateClearExpiry(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAdminUseCase(repo, fakeHasher{})
	expiry := time.Now().Add(30 * 24 * time.Hour)
	created, err := uc.Create(context.Background(), CreateInput{
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "plain-code",
		MembershipType: "Monthly",
		ExpiresAt:      &expiry,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := uc.Update(context.Background(), created.UID, UpdateInput{ClearExpiry: true})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.ExpiresAt != nil {
		t.Error("ExpiresAt not cleared")
	}
}

func TestAdminUseCase_UpdateNotFound(t *testing.T) {
	uc := NewAdminUseCase(newFakeRepo(), fakeHasher{})
	_, err := uc.Update(context.Background(), "ghost-uid", UpdateInput{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update error = %v, want ErrNotFound", err)
	}
}

func TestAdminUseCase_Delete(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAdminUseCase(repo, fakeHasher{})
	created, err := uc.Create(context.Background(), CreateInput{
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "plain-code",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := uc.Delete(context.Background(), created.UID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := uc.Delete(context.Background(), created.UID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
	if err := uc.Delete(context.Background(), "  "); err == nil {
		t.Error("Delete with blank uid should fail")
	}
}
