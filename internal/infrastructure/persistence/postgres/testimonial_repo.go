package postgres

import (
	"context"
	"database/sql"

	domain "ai-chart-analyst/internal/domain/testimonial"
)

// TestimonialRepo 儲存使用者見證。
type TestimonialRepo struct {
	db *sql.DB
}

// NewTestimonialRepo 建立 TestimonialRepo。
func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{db: db}
}

// Save 寫入一則見證並回填 id。
func (r *TestimonialRepo) Save(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error) {
	const q = `
INSERT INTO testimonials (user_email, name, message, rating, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, t.UserEmail, t.Name, t.Message, t.Rating, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return domain.Testimonial{}, err
	}
	return t, nil
}

// ExistsByEmail 檢查該 email 是否已提交過見證。
func (r *TestimonialRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM testimonials WHERE user_email = $1);`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// List 回傳全部見證，新的在前。
func (r *TestimonialRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	const q = `
SELECT id, user_email, name, message, rating, created_at
FROM testimonials
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.UserEmail, &t.Name, &t.Message, &t.Rating, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
