package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
)

// stubTx runs fn inline. When snapshot is set it is taken before fn and
// restored if fn fails, mimicking a rollback.
type stubTx struct {
	calls     int
	failures  int
	snapshots []func() func()
}

func (t *stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	var restores []func()
	for _, snap := range t.snapshots {
		restores = append(restores, snap())
	}
	if err := fn(ctx); err != nil {
		t.failures++
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type recordingBus struct {
	events []events.Event
}

func (b *recordingBus) Publish(event events.Event) {
	b.events = append(b.events, event)
}

type recordingAudit struct {
	logs []*models.AuditLog
	err  error
}

func (a *recordingAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if a.err != nil {
		return a.err
	}
	a.logs = append(a.logs, log)
	return nil
}

func (a *recordingAudit) actions() []string {
	out := make([]string, 0, len(a.logs))
	for _, l := range a.logs {
		out = append(out, l.Action)
	}
	return out
}

// memCache is an in-memory CacheRepository.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.data, key)
			n++
		}
	}
	return n, nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type memFeeTemplates struct {
	items map[string]models.FeeTemplate
	seq   int
}

func newMemFeeTemplates(items ...models.FeeTemplate) *memFeeTemplates {
	m := &memFeeTemplates{items: map[string]models.FeeTemplate{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memFeeTemplates) snapshot() func() {
	saved := map[string]models.FeeTemplate{}
	for k, v := range m.items {
		saved[k] = v
	}
	return func() { m.items = saved }
}

func (m *memFeeTemplates) Create(ctx context.Context, tpl *models.FeeTemplate) error {
	m.seq++
	if tpl.ID == "" {
		tpl.ID = fmt.Sprintf("tpl-%d", m.seq)
	}
	m.items[tpl.ID] = *tpl
	return nil
}

func (m *memFeeTemplates) GetByID(ctx context.Context, id string) (*models.FeeTemplate, error) {
	tpl, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &tpl, nil
}

func (m *memFeeTemplates) ListByBranch(ctx context.Context, branchID string, lifecycle models.Lifecycle) ([]models.FeeTemplate, error) {
	var out []models.FeeTemplate
	for _, tpl := range m.items {
		if tpl.BranchID == branchID && (lifecycle == "" || tpl.Lifecycle == lifecycle) {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *memFeeTemplates) Update(ctx context.Context, tpl *models.FeeTemplate, expected models.Lifecycle) error {
	cur, ok := m.items[tpl.ID]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	m.items[tpl.ID] = *tpl
	return nil
}

func (m *memFeeTemplates) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	cur, ok := m.items[id]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memFeeTemplates) Commit(ctx context.Context, id string) error {
	cur, ok := m.items[id]
	if !ok || cur.Lifecycle != models.LifecycleDraft {
		return sql.ErrNoRows
	}
	cur.Lifecycle = models.LifecycleCommitted
	m.items[id] = cur
	return nil
}

type memChangeRequests struct {
	items      map[string]models.ChangeRequest
	created    int
	listFilter models.ChangeRequestFilter
	listResult []models.ChangeRequest
}

func newMemChangeRequests(items ...models.ChangeRequest) *memChangeRequests {
	m := &memChangeRequests{items: map[string]models.ChangeRequest{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memChangeRequests) snapshot() func() {
	saved := map[string]models.ChangeRequest{}
	for k, v := range m.items {
		saved[k] = v
	}
	return func() { m.items = saved }
}

func (m *memChangeRequests) Create(ctx context.Context, req *models.ChangeRequest) error {
	for _, existing := range m.items {
		if existing.Status == workflow.StatusPending && existing.EntityType == req.EntityType && existing.TargetEntityID == req.TargetEntityID {
			return repository.ErrAlreadyExists
		}
	}
	m.created++
	if req.ID == "" {
		req.ID = fmt.Sprintf("cr-%d", m.created)
	}
	m.items[req.ID] = *req
	return nil
}

func (m *memChangeRequests) GetByID(ctx context.Context, id string) (*models.ChangeRequest, error) {
	cr, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &cr, nil
}

func (m *memChangeRequests) HasPending(ctx context.Context, entityType models.EntityType, targetID string) (bool, error) {
	for _, cr := range m.items {
		if cr.Status == workflow.StatusPending && cr.EntityType == entityType && cr.TargetEntityID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memChangeRequests) List(ctx context.Context, filter models.ChangeRequestFilter) ([]models.ChangeRequest, error) {
	m.listFilter = filter
	return m.listResult, nil
}

func (m *memChangeRequests) MarkReviewed(ctx context.Context, params repository.ReviewParams) error {
	cr, ok := m.items[params.ID]
	if !ok || cr.Status != workflow.StatusPending {
		return sql.ErrNoRows
	}
	cr.Status = params.Status
	cr.ReviewedBy = &params.ReviewedBy
	cr.ReviewedAt = &params.ReviewedAt
	cr.ReviewNote = params.Note
	m.items[params.ID] = cr
	return nil
}

func strPtr(v string) *string { return &v }

func teacher() models.Actor {
	return models.Actor{ID: "teacher-1", Name: "Tess Teacher", Role: models.RoleTeacher, BranchID: "branch-1"}
}

func principal() models.Actor {
	return models.Actor{ID: "principal-1", Name: "Pat Principal", Role: models.RolePrincipal, BranchID: "branch-1"}
}

func registrar() models.Actor {
	return models.Actor{ID: "registrar-1", Name: "Reg Registrar", Role: models.RoleRegistrar, BranchID: "branch-1"}
}

func student(id string) models.Actor {
	return models.Actor{ID: id, Role: models.RoleStudent, BranchID: "branch-1"}
}

// fullYear builds a valid breakdown with one TUITION component per month.
func fullYear(amount float64) []models.MonthlyFee {
	months := make([]models.MonthlyFee, 0, len(models.AcademicMonths))
	for _, m := range models.AcademicMonths {
		months = append(months, models.MonthlyFee{Month: m, Breakdown: []models.FeeComponent{{Component: "TUITION", Amount: amount}}})
	}
	return months
}
