package testimonial

import (
	"context"
	"strings"
	"time"

	domain "ai-chart-analyst/internal/domain/testimonial"
)

// Repository 存取使用者見證。
type Repository interface {
	Save(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Testimonial, error)
}

// UseCase 處理見證的提交與公開列表。每位會員限提交一則。
type UseCase struct {
	repo Repository
	now  func() time.Time
}

func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

type SubmitInput struct {
	UserEmail string
	Name      string
	Message   string
	Rating    int
}

func (uc *UseCase) Submit(ctx context.Context, in SubmitInput) (domain.Testimonial, error) {
	t := domain.Testimonial{
		UserEmail: strings.TrimSpace(strings.ToLower(in.UserEmail)),
		Name:      strings.TrimSpace(in.Name),
		Message:   strings.TrimSpace(in.Message),
		Rating:    in.Rating,
		CreatedAt: uc.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return domain.Testimonial{}, err
	}

	exists, err := uc.repo.ExistsByEmail(ctx, t.UserEmail)
	if err != nil {
		return domain.Testimonial{}, err
	}
	if exists {
		return domain.Testimonial{}, domain.ErrAlreadySubmitted
	}
	return uc.repo.Save(ctx, t)
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Testimonial, error) {
	return uc.repo.List(ctx)
}
