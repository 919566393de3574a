package member

import (
	"errors"
	"testing"
	"time"
)

func TestMemberCanLogin(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		member  Member
		wantErr error
	}{
		{"active lifetime", Member{IsActive: true}, nil},
		{"active with future expiry", Member{IsActive: true, ExpiresAt: &future}, nil},
		{"inactive", Member{IsActive: false}, ErrInactive},
		{"expired", Member{IsActive: true, ExpiresAt: &past}, ErrExpired},
		{"inactive and expired reports inactive", Member{IsActive: false, ExpiresAt: &past}, ErrInactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.member.CanLogin(now)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CanLogin() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestMemberValidate(t *testing.T) {
	base := Member{
		UID:            "uid-1",
		Name:           "Member One",
		Email:          "member@example.com",
		ActivationCode: "$2a$10$hash",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Member)
	}{
		{"missing uid", func(m *Member) { m.UID = "" }},
		{"missing email", func(m *Member) { m.Email = "" }},
		{"missing name", func(m *Member) { m.Name = "" }},
		{"missing activation code", func(m *Member) { m.ActivationCode = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := base
			tc.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
