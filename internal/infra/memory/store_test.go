package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	analysisDomain "ai-chart-analyst/internal/domain/analysis"
	"ai-chart-analyst/internal/domain/member"
	testimonialDomain "ai-chart-analyst/internal/domain/testimonial"
)

func record(id, uid string, at time.Time) analysisDomain.Record {
	return analysisDomain.Record{ID: id, UserUID: uid, Pair: "XAUUSD", CreatedAt: at}
}

func TestStore_Members(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.Create(ctx, member.Member{
		UID:            "uid-1",
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "hash",
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("ID not assigned")
	}

	if _, err := s.Create(ctx, member.Member{UID: "uid-2", Email: "member@example.com"}); err == nil {
		t.Error("duplicate email should be rejected")
	}

	got, err := s.FindByEmail(ctx, "member@example.com")
	if err != nil || got.UID != "uid-1" {
		t.Fatalf("FindByEmail = %+v, %v", got, err)
	}

	at := time.Now().UTC()
	if err := s.TouchLastLogin(ctx, "uid-1", at); err != nil {
		t.Fatalf("TouchLastLogin failed: %v", err)
	}
	got, _ = s.FindByUID(ctx, "uid-1")
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Error("LastLogin not updated")
	}

	if err := s.Delete(ctx, "uid-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.FindByUID(ctx, "uid-1"); !errors.Is(err, member.ErrNotFound) {
		t.Errorf("FindByUID after delete = %v, want ErrNotFound", err)
	}
}

func TestStore_SeedMembers(t *testing.T) {
	s := NewStore()
	s.SeedMembers()

	admin, err := s.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("seeded admin should have IsAdmin set")
	}
	if admin.ActivationCode == "admin-code-change-me" {
		t.Error("activation code seeded in plaintext")
	}
}

func TestStore_AnalysisRecords(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"rec-1", "rec-2", "rec-3"} {
		if err := s.SaveRecord(ctx, record(id, "uid-1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRecord failed: %v", err)
		}
	}

	recs, err := s.ListByUser(ctx, "uid-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(recs) != 3 || recs[0].ID != "rec-3" {
		t.Fatalf("ListByUser = %+v, want newest first", recs)
	}

	if recs, _ := s.ListByUser(ctx, "ghost"); len(recs) != 0 {
		t.Error("unknown user should have no records")
	}
}

func TestStore_DeleteRecordOwnership(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	s.SaveRecord(ctx, record("rec-1", "uid-1", now))
	s.SaveRecord(ctx, record("rec-2", "uid-2", now))

	// 非管理員不能刪別人的紀錄
	err := s.DeleteRecord(ctx, "rec-2", "uid-1", false)
	if !errors.Is(err, analysisDomain.ErrRecordNotFound) {
		t.Fatalf("cross-user delete = %v, want ErrRecordNotFound", err)
	}

	if err := s.DeleteRecord(ctx, "rec-1", "uid-1", false); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	// 管理員可刪任何人的紀錄
	if err := s.DeleteRecord(ctx, "rec-2", "admin-uid", true); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if recs, _ := s.ListByUser(ctx, "uid-2"); len(recs) != 0 {
		t.Error("record not removed by admin delete")
	}
}

func TestStore_LastAnalysisCache(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, ok, _ := s.GetLast(ctx, "uid-1"); ok {
		t.Error("GetLast on empty store should miss")
	}

	rec := record("rec-1", "uid-1", time.Now().UTC())
	if err := s.SetLast(ctx, "uid-1", rec); err != nil {
		t.Fatalf("SetLast failed: %v", err)
	}
	got, ok, err := s.GetLast(ctx, "uid-1")
	if err != nil || !ok || got.ID != "rec-1" {
		t.Fatalf("GetLast = %+v, %v, %v", got, ok, err)
	}
}

func TestStore_Testimonials(t *testing.T) {
	s := NewStore()
	repo := s.Testimonials()
	ctx := context.Background()

	saved, err := repo.Save(ctx, testimonialDomain.Testimonial{
		UserEmail: "member@example.com",
		Name:      "Member One",
		Message:   "Bagus",
		Rating:    5,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == 0 {
		t.Error("ID not assigned")
	}

	ok, err := repo.ExistsByEmail(ctx, "member@example.com")
	if err != nil || !ok {
		t.Fatalf("ExistsByEmail = %v, %v, want true", ok, err)
	}

	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("List = %d items, %v", len(items), err)
	}
}
