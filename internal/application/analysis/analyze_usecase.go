package analysis

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// MaxImageBytes 是單張 chart 圖片允許的最大尺寸。
const MaxImageBytes = 25 * 1024 * 1024

// ErrNoProvider 表示伺服器啟動時未設定任何模型供應商。
var ErrNoProvider = errors.New("no completion provider configured")

// CompletionProvider 是視覺模型供應商的抽象。
type CompletionProvider interface {
	// GenerateVision 以 prompt 與圖片呼叫模型，回傳原始文字回應。
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// AnalysisRepository 負責分析紀錄的持久化。
type AnalysisRepository interface {
	SaveRecord(ctx context.Context, rec domain.Record) error
	ListByUser(ctx context.Context, userUID string) ([]domain.Record, error)
	DeleteRecord(ctx context.Context, id string, userUID string, isAdmin bool) error
}

// LastAnalysisCache 快取每位使用者最近一次的分析結果。
type LastAnalysisCache interface {
	SetLast(ctx context.Context, userUID string, rec domain.Record) error
	GetLast(ctx context.Context, userUID string) (domain.Record, bool, error)
}

// AnalyzeInput 是一次分析請求的完整輸入。
type AnalyzeInput struct {
	UserUID   string
	Pair      string
	Timeframe string
	Risk      domain.RiskProfile
	Image     []byte
	MimeType  string
}

// AnalyzeUseCase 串起 prompt 組裝、模型呼叫、解析與歷史保存。
type AnalyzeUseCase struct {
	provider CompletionProvider
	repo     AnalysisRepository
	cache    LastAnalysisCache
	opts     Options
}

func NewAnalyzeUseCase(provider CompletionProvider, repo AnalysisRepository, cache LastAnalysisCache, opts Options) *AnalyzeUseCase {
	return &AnalyzeUseCase{provider: provider, repo: repo, cache: cache, opts: opts}
}

// Execute 執行一次完整的 chart 分析。
// 模型或解析失敗時回傳對應的 typed error，保存歷史失敗僅記錄不中斷。
func (uc *AnalyzeUseCase) Execute(ctx context.Context, in AnalyzeInput) (domain.Record, error) {
	if err := uc.validate(in); err != nil {
		return domain.Record{}, err
	}
	if uc.provider == nil {
		return domain.Record{}, ErrNoProvider
	}

	prompt := BuildPrompt(in.Pair, in.Timeframe, in.Risk)
	raw, err := uc.provider.GenerateVision(ctx, prompt, in.Image, in.MimeType)
	if err != nil {
		return domain.Record{}, err
	}

	parsed, err := ParseWithOptions(raw, in.Risk, uc.opts)
	if err != nil {
		return domain.Record{}, err
	}

	rec := domain.Record{
		ID:        uuid.NewString(),
		UserUID:   in.UserUID,
		Pair:      strings.ToUpper(strings.TrimSpace(in.Pair)),
		Timeframe: strings.TrimSpace(in.Timeframe),
		Risk:      string(in.Risk),
		AIText:    raw,
		Parsed:    parsed,
		CreatedAt: time.Now().UTC(),
	}

	if uc.repo != nil {
		if err := uc.repo.SaveRecord(ctx, rec); err != nil {
			log.Printf("analysis: save history failed user=%s id=%s err=%v", rec.UserUID, rec.ID, err)
		}
	}
	if uc.cache != nil {
		if err := uc.cache.SetLast(ctx, rec.UserUID, rec); err != nil {
			log.Printf("analysis: cache last failed user=%s err=%v", rec.UserUID, err)
		}
	}
	return rec, nil
}

func (uc *AnalyzeUseCase) validate(in AnalyzeInput) error {
	if strings.TrimSpace(in.UserUID) == "" {
		return &domain.ValidationError{Field: "user_uid", Reason: "required"}
	}
	if strings.TrimSpace(in.Pair) == "" {
		return &domain.ValidationError{Field: "pair", Reason: "required"}
	}
	if strings.TrimSpace(in.Timeframe) == "" {
		return &domain.ValidationError{Field: "timeframe", Reason: "required"}
	}
	if !in.Risk.Valid() {
		return &domain.ValidationError{Field: "risk", Reason: "must be Low or Medium"}
	}
	if len(in.Image) == 0 {
		return &domain.ValidationError{Field: "image", Reason: "required"}
	}
	if len(in.Image) > MaxImageBytes {
		return &domain.ValidationError{Field: "image", Reason: "exceeds 25MB limit"}
	}
	if !strings.HasPrefix(in.MimeType, "image/") {
		return &domain.ValidationError{Field: "image", Reason: "unsupported mime type"}
	}
	return nil
}
