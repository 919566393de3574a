package analysis

import (
	"context"
	"strings"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// HistoryUseCase 提供歷史分析紀錄的查詢與刪除。
type HistoryUseCase struct {
	repo  AnalysisRepository
	cache LastAnalysisCache
}

func NewHistoryUseCase(repo AnalysisRepository, cache LastAnalysisCache) *HistoryUseCase {
	return &HistoryUseCase{repo: repo, cache: cache}
}

// List 回傳使用者的全部分析紀錄，新的在前。
func (uc *HistoryUseCase) List(ctx context.Context, userUID string) ([]domain.Record, error) {
	if strings.TrimSpace(userUID) == "" {
		return nil, &domain.ValidationError{Field: "user_uid", Reason: "required"}
	}
	return uc.repo.ListByUser(ctx, userUID)
}

// Last 回傳使用者最近一次的分析。優先讀快取，未命中時退回資料庫。
func (uc *HistoryUseCase) Last(ctx context.Context, userUID string) (domain.Record, error) {
	if strings.TrimSpace(userUID) == "" {
		return domain.Record{}, &domain.ValidationError{Field: "user_uid", Reason: "required"}
	}
	if uc.cache != nil {
		if rec, ok, err := uc.cache.GetLast(ctx, userUID); err == nil && ok {
			return rec, nil
		}
	}
	recs, err := uc.repo.ListByUser(ctx, userUID)
	if err != nil {
		return domain.Record{}, err
	}
	if len(recs) == 0 {
		return domain.Record{}, domain.ErrRecordNotFound
	}
	return recs[0], nil
}

// Delete 刪除一筆紀錄。非管理員只能刪除自己的紀錄。
func (uc *HistoryUseCase) Delete(ctx context.Context, id, userUID string, isAdmin bool) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return uc.repo.DeleteRecord(ctx, id, userUID, isAdmin)
}
