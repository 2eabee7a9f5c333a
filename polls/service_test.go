// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/survey-basket/models"
	"github.com/danielhkuo/survey-basket/store"
	"github.com/danielhkuo/survey-basket/testutil"
	"github.com/danielhkuo/survey-basket/validation"
)

// fakeStore is an in-memory PollStore that records calls
type fakeStore struct {
	mu     sync.Mutex
	polls  map[int64]models.Poll
	nextID int64
	calls  []string

	insertErr error
	saveErr   error
	afterFind func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{polls: map[int64]models.Poll{}, nextID: 1}
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeStore) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeStore) FindByID(ctx context.Context, id int64) (*models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}
	f.record("find")
	if f.afterFind != nil {
		defer f.afterFind()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.polls[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}
	f.record("list")

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Poll{}
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.polls[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}
	f.record("insert")
	if f.insertErr != nil {
		return f.insertErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.polls {
		if p.Title == poll.Title {
			return fmt.Errorf("%w: duplicate title", store.ErrConstraintViolation)
		}
	}
	poll.ID = f.nextID
	f.nextID++
	f.polls[poll.ID] = *poll
	return nil
}

func (f *fakeStore) Save(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}
	f.record("save")
	if f.saveErr != nil {
		return f.saveErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.polls[poll.ID]; !ok {
		return store.ErrConcurrencyConflict
	}
	f.polls[poll.ID] = *poll
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}
	f.record("remove")

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.polls, poll.ID)
	return nil
}

func newTestService(fs *fakeStore) *Service {
	return New(fs, WithClock(testutil.Clock()))
}

func TestCreate(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	req := testutil.ValidPollRequest("Weekly Survey")
	req.IsPublished = true

	resp, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if resp.ID == 0 {
		t.Error("Expected generated id")
	}
	if resp.IsPublished {
		t.Error("Expected new poll to be unpublished")
	}
	if resp.Title != req.Title || resp.Summary != req.Summary {
		t.Errorf("Expected fields to match request, got %+v", resp)
	}
	if !resp.StartsAt.Equal(req.StartsAt) || !resp.EndsAt.Equal(req.EndsAt) {
		t.Errorf("Expected dates to match request, got %s..%s", resp.StartsAt, resp.EndsAt)
	}
}

func TestCreate_TodayIsUTCDate(t *testing.T) {
	// 23:30 on Oct 17 at -05:00 is already Oct 18 in UTC
	evening := time.Date(2026, time.October, 17, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))

	tests := []struct {
		name      string
		startsAt  models.Date
		wantValid bool
	}{
		{"local date is in the past", testutil.Today, false},
		{"UTC date", testutil.Today.AddDays(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(newFakeStore(), WithClock(func() time.Time { return evening }))

			if got := svc.Today(); got != testutil.Today.AddDays(1) {
				t.Fatalf("Expected today %s, got %s", testutil.Today.AddDays(1), got)
			}

			req := testutil.ValidPollRequest("Late Night Survey")
			req.StartsAt = tt.startsAt
			req.EndsAt = tt.startsAt.AddDays(3)

			_, err := svc.Create(context.Background(), req)
			if tt.wantValid && err != nil {
				t.Errorf("Expected create to succeed, got %v", err)
			}
			var verr *validation.Error
			if !tt.wantValid && (!errors.As(err, &verr) || !verr.Violations.Has(validation.FieldStartsAt)) {
				t.Errorf("Expected startsAt violation, got %v", err)
			}
		})
	}
}

func TestCreate_ValidationFailureSkipsStore(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	req := testutil.ValidPollRequest("Weekly Survey")
	req.StartsAt = testutil.Today.AddDays(-1)

	_, err := svc.Create(context.Background(), req)

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *validation.Error, got %v", err)
	}
	if !verr.Violations.Has(validation.FieldStartsAt) {
		t.Errorf("Expected startsAt violation, got %v", verr.Violations)
	}
	if fs.called("insert") {
		t.Error("Expected no store interaction on validation failure")
	}
}

func TestCreate_DuplicateTitle(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	if _, err := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey")); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	_, err := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))
	if !errors.Is(err, store.ErrConstraintViolation) {
		t.Errorf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestGet(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	created, err := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, found, err := svc.Get(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("Expected poll to be found, found=%v err=%v", found, err)
	}
	if got != created {
		t.Errorf("Expected %+v, got %+v", created, got)
	}

	_, found, err = svc.Get(ctx, 999)
	if err != nil {
		t.Errorf("Expected no error for missing poll, got %v", err)
	}
	if found {
		t.Error("Expected missing poll to be not found")
	}
}

func TestUpdate(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	created, _ := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))
	if _, err := svc.TogglePublish(ctx, created.ID); err != nil {
		t.Fatalf("TogglePublish failed: %v", err)
	}

	req := models.PollRequest{
		Title:       "Weekly Survey v2",
		Summary:     "Updated summary",
		IsPublished: false,
		StartsAt:    testutil.Today.AddDays(1),
		EndsAt:      testutil.Today.AddDays(7),
	}
	found, err := svc.Update(ctx, created.ID, req)
	if err != nil || !found {
		t.Fatalf("Expected update to succeed, found=%v err=%v", found, err)
	}

	got, _, _ := svc.Get(ctx, created.ID)
	if got.Title != req.Title || got.Summary != req.Summary {
		t.Errorf("Expected updated text fields, got %+v", got)
	}
	if !got.StartsAt.Equal(req.StartsAt) || !got.EndsAt.Equal(req.EndsAt) {
		t.Errorf("Expected updated dates, got %s..%s", got.StartsAt, got.EndsAt)
	}
	if !got.IsPublished {
		t.Error("Expected update to leave isPublished untouched")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	// Invalid fields do not matter when the target is missing
	found, err := svc.Update(context.Background(), 42, models.PollRequest{})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if found {
		t.Error("Expected not found")
	}
	if fs.called("save") {
		t.Error("Expected no write for missing poll")
	}
}

func TestUpdate_StoreErrorPropagates(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	created, _ := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))
	fs.saveErr = fmt.Errorf("%w: row changed", store.ErrConcurrencyConflict)

	_, err := svc.Update(ctx, created.ID, testutil.ValidPollRequest("Other"))
	if !errors.Is(err, store.ErrConcurrencyConflict) {
		t.Errorf("Expected ErrConcurrencyConflict, got %v", err)
	}
}

func TestTogglePublish(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	created, _ := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))

	for i, want := range []bool{true, false} {
		found, err := svc.TogglePublish(ctx, created.ID)
		if err != nil || !found {
			t.Fatalf("Toggle %d failed: found=%v err=%v", i, found, err)
		}
		got, _, _ := svc.Get(ctx, created.ID)
		if got.IsPublished != want {
			t.Errorf("Toggle %d: expected isPublished=%v, got %v", i, want, got.IsPublished)
		}
	}

	found, err := svc.TogglePublish(ctx, 999)
	if err != nil || found {
		t.Errorf("Expected not found for missing poll, found=%v err=%v", found, err)
	}
}

func TestDelete(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	created, _ := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey"))

	found, err := svc.Delete(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("Expected delete to succeed, found=%v err=%v", found, err)
	}

	_, found, _ = svc.Get(ctx, created.ID)
	if found {
		t.Error("Expected poll to be gone after delete")
	}

	found, err = svc.Delete(ctx, created.ID)
	if err != nil || found {
		t.Errorf("Expected second delete to be not found, found=%v err=%v", found, err)
	}
}

func TestList(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()

	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", got)
	}

	svc.Create(ctx, testutil.ValidPollRequest("First poll"))
	svc.Create(ctx, testutil.ValidPollRequest("Second poll"))

	got, _ = svc.List(ctx)
	if len(got) != 2 {
		t.Errorf("Expected 2 polls, got %d", len(got))
	}
}

func TestCurrent(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)
	ctx := context.Background()
	today := testutil.Today

	fs.polls = map[int64]models.Poll{
		1: {ID: 1, Title: "open today", IsPublished: true, StartsAt: today, EndsAt: today},
		2: {ID: 2, Title: "draft", IsPublished: false, StartsAt: today, EndsAt: today.AddDays(1)},
		3: {ID: 3, Title: "future", IsPublished: true, StartsAt: today.AddDays(1), EndsAt: today.AddDays(2)},
		4: {ID: 4, Title: "ended", IsPublished: true, StartsAt: today.AddDays(-5), EndsAt: today.AddDays(-1)},
		5: {ID: 5, Title: "running", IsPublished: true, StartsAt: today.AddDays(-5), EndsAt: today.AddDays(5)},
	}
	fs.nextID = 6

	got, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 5 {
		t.Errorf("Expected polls 1 and 5, got %+v", got)
	}
}

func TestCancelledBeforeStart(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checks := []struct {
		name string
		run  func() error
	}{
		{"list", func() error { _, err := svc.List(ctx); return err }},
		{"get", func() error { _, _, err := svc.Get(ctx, 1); return err }},
		{"create", func() error { _, err := svc.Create(ctx, testutil.ValidPollRequest("Weekly Survey")); return err }},
		{"update", func() error { _, err := svc.Update(ctx, 1, testutil.ValidPollRequest("x")); return err }},
		{"delete", func() error { _, err := svc.Delete(ctx, 1); return err }},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if err := c.run(); !errors.Is(err, store.ErrCancelled) {
				t.Errorf("Expected ErrCancelled, got %v", err)
			}
		})
	}

	if len(fs.calls) != 0 {
		t.Errorf("Expected no store work after cancellation, got %v", fs.calls)
	}
}

func TestCancelledBetweenFindAndWrite(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	created, _ := svc.Create(context.Background(), testutil.ValidPollRequest("Weekly Survey"))

	ctx, cancel := context.WithCancel(context.Background())
	fs.afterFind = cancel

	found, err := svc.Delete(ctx, created.ID)
	if !errors.Is(err, store.ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got found=%v err=%v", found, err)
	}
	if fs.called("remove") {
		t.Error("Expected remove not to start after cancellation")
	}

	_, found, _ = svc.Get(context.Background(), created.ID)
	if !found {
		t.Error("Expected poll to survive a cancelled delete")
	}
}
