package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// AnalysisRepo 儲存與查詢分析紀錄。parsed 欄位以 JSONB 保存完整解析結果。
type AnalysisRepo struct {
	db *sql.DB
}

// NewAnalysisRepo 建立 AnalysisRepo。
func NewAnalysisRepo(db *sql.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

// SaveRecord 寫入一筆分析紀錄。
func (r *AnalysisRepo) SaveRecord(ctx context.Context, rec domain.Record) error {
	parsed, err := json.Marshal(rec.Parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed analysis: %w", err)
	}
	const q = `
INSERT INTO analyses (id, user_uid, pair, timeframe, risk, ai_text, parsed_json, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err = r.db.ExecContext(ctx, q,
		rec.ID, rec.UserUID, rec.Pair, rec.Timeframe, rec.Risk, rec.AIText, parsed, rec.CreatedAt)
	return err
}

// ListByUser 回傳使用者的全部紀錄，新的在前。
func (r *AnalysisRepo) ListByUser(ctx context.Context, userUID string) ([]domain.Record, error) {
	const q = `
SELECT id, user_uid, pair, timeframe, risk, ai_text, parsed_json, created_at
FROM analyses
WHERE user_uid = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var rec domain.Record
		var parsed []byte
		if err := rows.Scan(&rec.ID, &rec.UserUID, &rec.Pair, &rec.Timeframe, &rec.Risk, &rec.AIText, &parsed, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(parsed, &rec.Parsed); err != nil {
			return nil, fmt.Errorf("unmarshal parsed analysis %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteRecord 刪除紀錄。非管理員只能刪除自己的紀錄，查無符合列時回傳 ErrRecordNotFound。
func (r *AnalysisRepo) DeleteRecord(ctx context.Context, id string, userUID string, isAdmin bool) error {
	var res sql.Result
	var err error
	if isAdmin {
		res, err = r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1;`, id)
	} else {
		res, err = r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1 AND user_uid = $2;`, id, userUID)
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
