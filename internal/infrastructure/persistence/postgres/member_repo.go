package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ai-chart-analyst/internal/domain/member"
	authinfra "ai-chart-analyst/internal/infrastructure/auth"

	"github.com/google/uuid"
)

// MemberRepo 提供會員的存取。
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo 建立 MemberRepo。
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `id, uid, name, email, activation_code, is_admin, is_active,
membership_type, plan_type, join_date, membership_expires_at, last_login, picture_url`

func scanMember(row interface{ Scan(...any) error }) (member.Member, error) {
	var m member.Member
	var expiresAt, lastLogin sql.NullTime
	var pictureURL sql.NullString
	err := row.Scan(&m.ID, &m.UID, &m.Name, &m.Email, &m.ActivationCode, &m.IsAdmin, &m.IsActive,
		&m.MembershipType, &m.PlanType, &m.JoinDate, &expiresAt, &lastLogin, &pictureURL)
	if err != nil {
		return member.Member{}, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		m.ExpiresAt = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		m.LastLogin = &t
	}
	m.PictureURL = pictureURL.String
	return m, nil
}

// FindByEmail 依 email 查詢會員。
func (r *MemberRepo) FindByEmail(ctx context.Context, email string) (member.Member, error) {
	const q = `
SELECT ` + memberColumns + `
FROM members
WHERE email = $1
LIMIT 1;
`
	m, err := scanMember(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return member.Member{}, member.ErrNotFound
	}
	return m, err
}

// FindByUID 依 uid 查詢會員。
func (r *MemberRepo) FindByUID(ctx context.Context, uid string) (member.Member, error) {
	const q = `
SELECT ` + memberColumns + `
FROM members
WHERE uid = $1
LIMIT 1;
`
	m, err := scanMember(r.db.QueryRowContext(ctx, q, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return member.Member{}, member.ErrNotFound
	}
	return m, err
}

// List 回傳全部會員，加入順序新的在前。
func (r *MemberRepo) List(ctx context.Context) ([]member.Member, error) {
	const q = `
SELECT ` + memberColumns + `
FROM members
ORDER BY join_date DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create 新增會員並回填資料庫產生的 id。
func (r *MemberRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	const q = `
INSERT INTO members (uid, name, email, activation_code, is_admin, is_active,
	membership_type, plan_type, join_date, membership_expires_at, picture_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		m.UID, m.Name, m.Email, m.ActivationCode, m.IsAdmin, m.IsActive,
		m.MembershipType, m.PlanType, m.JoinDate, m.ExpiresAt, nullableString(m.PictureURL),
	).Scan(&m.ID)
	if err != nil {
		return member.Member{}, err
	}
	return m, nil
}

// Update 以 uid 為鍵更新會員。
func (r *MemberRepo) Update(ctx context.Context, m member.Member) error {
	const q = `
UPDATE members
SET name = $2, activation_code = $3, is_admin = $4, is_active = $5,
	membership_type = $6, plan_type = $7, membership_expires_at = $8, picture_url = $9
WHERE uid = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		m.UID, m.Name, m.ActivationCode, m.IsAdmin, m.IsActive,
		m.MembershipType, m.PlanType, m.ExpiresAt, nullableString(m.PictureURL),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return member.ErrNotFound
	}
	return nil
}

// Delete 刪除會員。
func (r *MemberRepo) Delete(ctx context.Context, uid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE uid = $1;`, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return member.ErrNotFound
	}
	return nil
}

// TouchLastLogin 更新最後登入時間。
func (r *MemberRepo) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE members SET last_login = $2 WHERE uid = $1;`, uid, at)
	return err
}

// SeedDefaults 建立預設管理員帳號，已存在時不覆寫激活碼。
func (r *MemberRepo) SeedDefaults(ctx context.Context) error {
	hash, err := authinfra.HashCode("admin-code-change-me")
	if err != nil {
		return err
	}
	const q = `
INSERT INTO members (uid, name, email, activation_code, is_admin, is_active,
	membership_type, plan_type, join_date)
VALUES ($1, $2, $3, $4, TRUE, TRUE, $5, 'admin', NOW())
ON CONFLICT (email) DO NOTHING;
`
	_, err = r.db.ExecContext(ctx, q,
		uuid.NewString(), "Admin", "admin@example.com", hash, member.MembershipLifetime)
	return err
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
