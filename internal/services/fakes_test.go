package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/types"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func freezeTime() func() {
	prev := now
	now = func() time.Time { return fixedNow }
	return func() { now = prev }
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.TableChanged
}

func (b *recordingBus) Publish(_ context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := event.(events.TableChanged); ok {
		b.events = append(b.events, e)
	}
}

func (b *recordingBus) tables() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Table+":"+e.Action)
	}
	return out
}

// inlineTx выполняет fn без транзакции; ошибка fn возвращается как есть.
type inlineTx struct{ calls int }

func (m *inlineTx) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeDeviceRepo struct {
	mu      sync.Mutex
	items   map[uint64]*entities.Device
	nextID  uint64
	failAdd error
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{items: map[uint64]*entities.Device{}}
}

func (r *fakeDeviceRepo) List(_ context.Context, _ types.Filter) ([]entities.Device, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Device, 0, len(r.items))
	for id := uint64(1); id <= r.nextID; id++ {
		if d, ok := r.items[id]; ok {
			out = append(out, *d)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeDeviceRepo) ListByClient(ctx context.Context, clientID uint64, f types.Filter) ([]entities.Device, uint64, error) {
	all, _, _ := r.List(ctx, f)
	var out []entities.Device
	for _, d := range all {
		if d.ClientID != nil && *d.ClientID == clientID {
			out = append(out, d)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeDeviceRepo) ListByOperator(ctx context.Context, operatorID uint64, f types.Filter) ([]entities.Device, uint64, error) {
	all, _, _ := r.List(ctx, f)
	var out []entities.Device
	for _, d := range all {
		if d.OperatorID != nil && *d.OperatorID == operatorID {
			out = append(out, d)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeDeviceRepo) Find(_ context.Context, id uint64) (*entities.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeviceRepo) FindByCode(_ context.Context, category, itemCode string) (*entities.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.items {
		if d.Category == category && d.ItemCode == itemCode {
			cp := *d
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDeviceRepo) Create(_ context.Context, _ pgx.Tx, device entities.Device) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd != nil {
		return 0, r.failAdd
	}
	for _, d := range r.items {
		if d.Category == device.Category && d.ItemCode == device.ItemCode {
			return 0, apperrors.ErrConflict
		}
	}
	r.nextID++
	device.ID = r.nextID
	device.CreatedAt = fixedNow
	device.UpdatedAt = fixedNow
	r.items[device.ID] = &device
	return device.ID, nil
}

func (r *fakeDeviceRepo) Update(_ context.Context, _ pgx.Tx, id uint64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "photo_path":
			s, _ := v.(string)
			d.PhotoPath = &s
		case "stock_status":
			d.StockStatus, _ = v.(string)
		case "notes":
			if v == nil {
				d.Notes = nil
			} else {
				s, _ := v.(string)
				d.Notes = &s
			}
		}
	}
	return nil
}

func (r *fakeDeviceRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeInterventionRepo struct {
	mu      sync.Mutex
	items   map[uint64]*entities.Intervention
	nextID  uint64
	updates []map[string]interface{}
	failAdd error
}

func newFakeInterventionRepo() *fakeInterventionRepo {
	return &fakeInterventionRepo{items: map[uint64]*entities.Intervention{}}
}

func (r *fakeInterventionRepo) List(_ context.Context, _ types.Filter) ([]entities.Intervention, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Intervention
	for id := uint64(1); id <= r.nextID; id++ {
		if i, ok := r.items[id]; ok {
			out = append(out, *i)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeInterventionRepo) ListByDevice(ctx context.Context, deviceID uint64, f types.Filter) ([]entities.Intervention, uint64, error) {
	all, _, _ := r.List(ctx, f)
	var out []entities.Intervention
	for _, i := range all {
		if i.DeviceID == deviceID {
			out = append(out, i)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeInterventionRepo) Find(_ context.Context, id uint64) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInterventionRepo) Create(_ context.Context, _ pgx.Tx, intervention entities.Intervention) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd != nil {
		return 0, r.failAdd
	}
	r.nextID++
	intervention.ID = r.nextID
	intervention.CreatedAt = fixedNow
	intervention.UpdatedAt = fixedNow
	r.items[intervention.ID] = &intervention
	return intervention.ID, nil
}

func (r *fakeInterventionRepo) Update(_ context.Context, _ pgx.Tx, id uint64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.updates = append(r.updates, fields)
	for k, v := range fields {
		switch k {
		case "status":
			i.Status, _ = v.(string)
		case "started_at":
			if t, ok := v.(time.Time); ok {
				i.StartedAt = &t
			}
		case "completed_at":
			if t, ok := v.(time.Time); ok {
				i.CompletedAt = &t
			}
		}
	}
	return nil
}

func (r *fakeInterventionRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeFileRepo struct {
	mu      sync.Mutex
	items   map[string]*entities.Attachment
	nextID  uint64
	failAdd error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{items: map[string]*entities.Attachment{}}
}

func fileKey(kind string, id uint64) string {
	return fmt.Sprintf("%s#%d", kind, id)
}

func (r *fakeFileRepo) ListByOwner(_ context.Context, kind string, ownerID uint64, _ types.Filter) ([]entities.Attachment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Attachment
	for id := uint64(1); id <= r.nextID; id++ {
		if a, ok := r.items[fileKey(kind, id)]; ok && a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeFileRepo) Find(_ context.Context, kind string, id uint64) (*entities.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[fileKey(kind, id)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeFileRepo) Create(_ context.Context, _ pgx.Tx, file entities.Attachment) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd != nil {
		return 0, r.failAdd
	}
	r.nextID++
	file.ID = r.nextID
	file.CreatedAt = fixedNow
	r.items[fileKey(file.Kind, file.ID)] = &file
	return file.ID, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, _ pgx.Tx, kind string, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fileKey(kind, id)
	if _, ok := r.items[key]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, key)
	return nil
}

type fakeQuoteRepo struct {
	mu      sync.Mutex
	items   map[uint64]*entities.QuoteInvoice
	nextID  uint64
	updates []map[string]interface{}
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{items: map[uint64]*entities.QuoteInvoice{}}
}

func (r *fakeQuoteRepo) List(_ context.Context, _ types.Filter) ([]entities.QuoteInvoice, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.QuoteInvoice
	for _, q := range r.items {
		out = append(out, *q)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeQuoteRepo) Find(_ context.Context, id uint64) (*entities.QuoteInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuoteRepo) Create(_ context.Context, _ pgx.Tx, doc entities.QuoteInvoice) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	doc.ID = r.nextID
	if doc.IssueDate.IsZero() {
		doc.IssueDate = fixedNow.Truncate(24 * time.Hour)
	}
	r.items[doc.ID] = &doc
	return doc.ID, nil
}

func (r *fakeQuoteRepo) Update(_ context.Context, _ pgx.Tx, id uint64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.updates = append(r.updates, fields)
	for k, v := range fields {
		switch k {
		case "amount":
			q.Amount, _ = v.(float64)
		case "vat_rate":
			q.VatRate, _ = v.(float64)
		case "total_amount":
			q.TotalAmount, _ = v.(float64)
		case "file_path":
			s, _ := v.(string)
			q.FilePath = &s
		}
	}
	return nil
}

func (r *fakeQuoteRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", apperrors.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
