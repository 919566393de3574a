package memory

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	analysisDomain "ai-chart-analyst/internal/domain/analysis"
	"ai-chart-analyst/internal/domain/member"
	testimonialDomain "ai-chart-analyst/internal/domain/testimonial"
	authinfra "ai-chart-analyst/internal/infrastructure/auth"

	"github.com/google/uuid"
)

var errDuplicateEmail = errors.New("email already registered")

// Store 為未設定資料庫時的記憶體後備，重啟即清空，僅供本機開發。
// 同時實作會員、分析紀錄、見證的 repository 與 last-analysis 快取。
type Store struct {
	mu           sync.RWMutex
	members      map[string]member.Member // uid -> member
	analyses     map[string][]analysisDomain.Record
	lastAnalysis map[string]analysisDomain.Record
	testimonials []testimonialDomain.Testimonial
	idSeq        int64
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		members:      make(map[string]member.Member),
		analyses:     make(map[string][]analysisDomain.Record),
		lastAnalysis: make(map[string]analysisDomain.Record),
	}
}

// SeedMembers 建立預設帳號供登入測試。
func (s *Store) SeedMembers() {
	hash := func(code string) string {
		h, err := authinfra.HashCode(code)
		if err != nil {
			return code
		}
		return h
	}
	s.addMember("admin@example.com", "Admin", hash("admin-code-change-me"), true)
	s.addMember("member@example.com", "Member", hash("member-code"), false)
	log.Printf("memory: seeded default members count=%d", len(s.members))
}

func (s *Store) addMember(email, name, hashedCode string, isAdmin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	m := member.Member{
		ID:             s.idSeq,
		UID:            uuid.NewString(),
		Name:           name,
		Email:          email,
		ActivationCode: hashedCode,
		IsAdmin:        isAdmin,
		IsActive:       true,
		MembershipType: member.MembershipLifetime,
		JoinDate:       time.Now().UTC(),
	}
	s.members[m.UID] = m
}

// MemberRepository impl
func (s *Store) FindByEmail(ctx context.Context, email string) (member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.Email == email {
			return m, nil
		}
	}
	return member.Member{}, member.ErrNotFound
}

func (s *Store) FindByUID(ctx context.Context, uid string) (member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[uid]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[uid]
	if !ok {
		return member.ErrNotFound
	}
	m.LastLogin = &at
	s.members[uid] = m
	return nil
}

func (s *Store) Create(ctx context.Context, m member.Member) (member.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.Email == m.Email {
			return member.Member{}, errDuplicateEmail
		}
	}
	s.idSeq++
	m.ID = s.idSeq
	s.members[m.UID] = m
	return m, nil
}

func (s *Store) Update(ctx context.Context, m member.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.members[m.UID]
	if !ok {
		return member.ErrNotFound
	}
	m.ID = old.ID
	s.members[m.UID] = m
	return nil
}

func (s *Store) Delete(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[uid]; !ok {
		return member.ErrNotFound
	}
	delete(s.members, uid)
	return nil
}

func (s *Store) List(ctx context.Context) ([]member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]member.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// AnalysisRepository impl
func (s *Store) SaveRecord(ctx context.Context, rec analysisDomain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[rec.UserUID] = append(s.analyses[rec.UserUID], rec)
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userUID string) ([]analysisDomain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.analyses[userUID]
	out := make([]analysisDomain.Record, len(recs))
	copy(out, recs)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string, userUID string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isAdmin {
		for uid, recs := range s.analyses {
			if filtered, found := removeRecord(recs, id); found {
				s.analyses[uid] = filtered
				return nil
			}
		}
		return analysisDomain.ErrRecordNotFound
	}
	filtered, found := removeRecord(s.analyses[userUID], id)
	if !found {
		return analysisDomain.ErrRecordNotFound
	}
	s.analyses[userUID] = filtered
	return nil
}

func removeRecord(recs []analysisDomain.Record, id string) ([]analysisDomain.Record, bool) {
	for i, r := range recs {
		if r.ID == id {
			return append(recs[:i:i], recs[i+1:]...), true
		}
	}
	return recs, false
}

// LastAnalysisCache impl
func (s *Store) SetLast(ctx context.Context, userUID string, rec analysisDomain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnalysis[userUID] = rec
	return nil
}

func (s *Store) GetLast(ctx context.Context, userUID string) (analysisDomain.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.lastAnalysis[userUID]
	return rec, ok, nil
}

// TestimonialStore 以獨立型別實作見證 repository，
// 避免與會員 List 方法簽名衝突。
type TestimonialStore struct {
	s *Store
}

// Testimonials 回傳見證 repository 視圖。
func (s *Store) Testimonials() *TestimonialStore {
	return &TestimonialStore{s: s}
}

func (t *TestimonialStore) Save(ctx context.Context, item testimonialDomain.Testimonial) (testimonialDomain.Testimonial, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.idSeq++
	item.ID = t.s.idSeq
	t.s.testimonials = append(t.s.testimonials, item)
	return item, nil
}

func (t *TestimonialStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, item := range t.s.testimonials {
		if item.UserEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (t *TestimonialStore) List(ctx context.Context) ([]testimonialDomain.Testimonial, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := make([]testimonialDomain.Testimonial, len(t.s.testimonials))
	copy(out, t.s.testimonials)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
