package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-chart-analyst/internal/domain/member"

	"github.com/DATA-DOG/go-sqlmock"
)

func memberRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"id", "uid", "name", "email", "activation_code", "is_admin", "is_active",
		"membership_type", "plan_type", "join_date", "membership_expires_at", "last_login", "picture_url",
	})
}

func TestMemberRepo_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	joined := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	rows := memberRows(t).AddRow(
		int64(1), "uid-1", "Member One", "member@example.com", "$2a$10$hash", false, true,
		member.MembershipLifetime, "basic", joined, nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs("member@example.com").
		WillReturnRows(rows)

	m, err := repo.FindByEmail(context.Background(), "member@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if m.UID != "uid-1" || m.Email != "member@example.com" {
		t.Errorf("unexpected member: %+v", m)
	}
	if m.ExpiresAt != nil || m.LastLogin != nil {
		t.Errorf("nullable fields should stay nil: %+v", m)
	}
	if m.PictureURL != "" {
		t.Errorf("PictureURL = %q, want empty", m.PictureURL)
	}
}

func TestMemberRepo_FindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs("ghost@example.com").
		WillReturnRows(memberRows(t))

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, member.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestMemberRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	m := member.Member{
		UID:            "uid-1",
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "$2a$10$hash",
		IsActive:       true,
		MembershipType: member.MembershipLifetime,
		PlanType:       "basic",
		JoinDate:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery("INSERT INTO members").
		WithArgs(m.UID, m.Name, m.Email, m.ActivationCode, m.IsAdmin, m.IsActive,
			m.MembershipType, m.PlanType, m.JoinDate, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	created, err := repo.Create(context.Background(), m)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("ID = %d, want 7", created.ID)
	}
}

func TestMemberRepo_UpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	mock.ExpectExec("UPDATE members").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), member.Member{UID: "ghost"})
	if !errors.Is(err, member.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestMemberRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	mock.ExpectExec("DELETE FROM members").
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "uid-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestMemberRepo_TouchLastLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewMemberRepo(db)
	at := time.Now().UTC()
	mock.ExpectExec("UPDATE members SET last_login").
		WithArgs("uid-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastLogin(context.Background(), "uid-1", at); err != nil {
		t.Fatalf("TouchLastLogin failed: %v", err)
	}
}
