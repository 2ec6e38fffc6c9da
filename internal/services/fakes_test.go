package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"together/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

// fakeStore is an in-memory UnitOfWork whose transactions see the shared repos directly.
type fakeStore struct {
	events    *fakeEventRepo
	requests  *fakeRequestRepo
	favorites *fakeFavoriteRepo
	users     *fakeUserRepo
	txCount   int
}

func newFakeStore() *fakeStore {
	events := newFakeEventRepo()
	return &fakeStore{
		events:    events,
		requests:  newFakeRequestRepo(),
		favorites: &fakeFavoriteRepo{marks: make(map[favoriteKey]struct{}), events: events},
		users:     &fakeUserRepo{byID: make(map[string]*domain.UserProfile)},
	}
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	s.txCount++
	return fn(s)
}

func (s *fakeStore) Events() domain.EventRepository          { return s.events }
func (s *fakeStore) Requests() domain.EventRequestRepository { return s.requests }
func (s *fakeStore) Favorites() domain.FavoriteRepository    { return s.favorites }
func (s *fakeStore) Users() domain.UserRepository            { return s.users }

// seedEvent stores an open event dated daysFromBase days after 2025-06-01.
func (s *fakeStore) seedEvent(ownerID, title string, daysFromBase int) *domain.Event {
	e := &domain.Event{
		OwnerID:  ownerID,
		SportID:  1,
		StatusID: domain.EventStatusOpen,
		Title:    title,
		Date:     time.Date(2025, 6, 1+daysFromBase, 0, 0, 0, 0, time.UTC),
		City:     "Sofia",
		Country:  "BG",
	}
	_ = s.events.Create(context.Background(), e)
	return e
}

// fakeEventRepo is an in-memory EventRepository for tests. Ids start at 101.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	nextID    int64
	createErr error
	getErr    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 101,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) sorted(keep func(*domain.Event) bool) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	return f.sorted(func(e *domain.Event) bool { return e.OwnerID == ownerID }), nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := f.sorted(func(e *domain.Event) bool {
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{e.Title, e.Description, e.City, e.Country}, "\n"))
			if !strings.Contains(hay, q) {
				return false
			}
		}
		if filter.SportID != nil && e.SportID != *filter.SportID {
			return false
		}
		if filter.ExperienceID != nil && e.ExperienceID != 0 && e.ExperienceID != *filter.ExperienceID {
			return false
		}
		if filter.DateFrom != nil && e.Date.Before(*filter.DateFrom) {
			return false
		}
		if filter.DateTo != nil && e.Date.After(*filter.DateTo) {
			return false
		}
		return true
	})
	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

func (f *fakeEventRepo) ListLocations(ctx context.Context) ([]*domain.EventLocation, error) {
	out := make([]*domain.EventLocation, 0)
	for _, e := range f.sorted(func(e *domain.Event) bool { return e.StatusID == domain.EventStatusOpen }) {
		out = append(out, &domain.EventLocation{ID: e.ID, Title: e.Title, SportID: e.SportID, City: e.City, Country: e.Country, Date: e.Date})
	}
	return out, nil
}

// fakeRequestRepo is an in-memory EventRequestRepository. Create enforces one active request
// per (event, guest) the way the partial unique index does. Ids start at 5001.
type fakeRequestRepo struct {
	byID      map[int64]*domain.EventRequest
	nextID    int64
	updateErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[int64]*domain.EventRequest), nextID: 5001}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *domain.EventRequest) error {
	if _, err := f.GetActiveByEventAndGuest(ctx, req.EventID, req.GuestID); err == nil {
		return fmt.Errorf("%w: duplicate key", domain.ErrConflict)
	}
	req.ID = f.nextID
	f.nextID++
	cp := *req
	f.byID[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.EventRequest, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRequestRepo) GetActiveByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	for _, r := range f.byID {
		if r.EventID == eventID && r.GuestID == guestID && r.StatusID.Active() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRequestRepo) GetLatestByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	var latest *domain.EventRequest
	for _, r := range f.byID {
		if r.EventID != eventID || r.GuestID != guestID {
			continue
		}
		if latest == nil || r.RequestedAt.After(latest.RequestedAt) ||
			(r.RequestedAt.Equal(latest.RequestedAt) && r.ID > latest.ID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, req *domain.EventRequest) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	f.byID[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) list(keep func(*domain.EventRequest) bool) []*domain.EventRequest {
	out := make([]*domain.EventRequest, 0)
	for _, r := range f.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRequestRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.EventRequest, error) {
	return f.list(func(r *domain.EventRequest) bool { return r.EventID == eventID }), nil
}

func (f *fakeRequestRepo) ListByGuestID(ctx context.Context, guestID string) ([]*domain.EventRequest, error) {
	return f.list(func(r *domain.EventRequest) bool { return r.GuestID == guestID }), nil
}

type favoriteKey struct {
	userID  string
	eventID int64
}

type fakeFavoriteRepo struct {
	marks  map[favoriteKey]struct{}
	events *fakeEventRepo
	err    error
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID string, eventID int64) error {
	if f.err != nil {
		return f.err
	}
	f.marks[favoriteKey{userID, eventID}] = struct{}{}
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID string, eventID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	k := favoriteKey{userID, eventID}
	_, ok := f.marks[k]
	delete(f.marks, k)
	return ok, nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, userID string, eventID int64) (bool, error) {
	_, ok := f.marks[favoriteKey{userID, eventID}]
	return ok, nil
}

func (f *fakeFavoriteRepo) ListEventIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]int64, 0)
	for k := range f.marks {
		if k.userID == userID {
			ids = append(ids, k.eventID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeFavoriteRepo) ListEventsByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	ids, err := f.ListEventIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(ids))
	for _, id := range ids {
		if e, ok := f.events.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID map[string]*domain.UserProfile
	err  error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeNotifier struct {
	sent []*domain.Notification
}

func (n *fakeNotifier) Notify(ctx context.Context, notification *domain.Notification) {
	n.sent = append(n.sent, notification)
}

type fakePublisher struct {
	published []*domain.Notification
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, n *domain.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

type fakeEmailService struct {
	created []*domain.RequestCreatedEmailData
	decided []*domain.RequestDecidedEmailData
}

func (f *fakeEmailService) SendRequestCreated(ctx context.Context, data *domain.RequestCreatedEmailData) error {
	f.created = append(f.created, data)
	return nil
}

func (f *fakeEmailService) SendRequestDecided(ctx context.Context, data *domain.RequestDecidedEmailData) error {
	f.decided = append(f.decided, data)
	return nil
}

var errDB = errors.New("db error")
