package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type viewedKey struct {
	notificationID int64
	userID         string
}

// memStore backs the fandom, subscription, notification and viewed fakes
type memStore struct {
	mu            sync.Mutex
	fandoms       map[int64]*models.Fandom
	members       map[int64]map[string]time.Time
	notifications map[int64]*models.Notification
	viewed        map[viewedKey]*models.NotificationViewed
	nextID        int64

	failNotificationCreate error
	failMembers            error
	failViewedWrite        map[int64]error
}

func newMemStore() *memStore {
	return &memStore{
		fandoms:         make(map[int64]*models.Fandom),
		members:         make(map[int64]map[string]time.Time),
		notifications:   make(map[int64]*models.Notification),
		viewed:          make(map[viewedKey]*models.NotificationViewed),
		failViewedWrite: make(map[int64]error),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addFandom(name string, memberIDs ...string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &models.Fandom{ID: m.id(), GameID: 1, Name: name, CreatorID: "creator"}
	m.fandoms[f.ID] = f
	m.members[f.ID] = make(map[string]time.Time)
	for _, u := range memberIDs {
		m.members[f.ID][u] = time.Now()
	}
	return f.ID
}

func (m *memStore) addNotification(fandomID int64, createdAt time.Time) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := &models.Notification{ID: m.id(), FandomID: fandomID, NotifierID: "creator", Type: models.NotificationNewPost, CreatedAt: createdAt}
	m.notifications[n.ID] = n
	return n.ID
}

func (m *memStore) viewedRow(notificationID int64, userID string) *models.NotificationViewed {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.viewed[viewedKey{notificationID, userID}]
	if !ok {
		return nil
	}
	cp := *row
	return &cp
}

func (m *memStore) rowCount(notificationID int64, userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.viewed {
		if k.notificationID == notificationID && k.userID == userID {
			n++
		}
	}
	return n
}

func (m *memStore) isMember(userID string, fandomID int64) bool {
	_, ok := m.members[fandomID][userID]
	return ok
}

// fakeFandoms implements repository.FandomRepository
type fakeFandoms struct{ *memStore }

func (f fakeFandoms) Create(_ context.Context, fandom *models.Fandom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fandom.ID = f.id()
	f.fandoms[fandom.ID] = fandom
	f.members[fandom.ID] = make(map[string]time.Time)
	return nil
}

func (f fakeFandoms) GetByID(_ context.Context, id int64) (*models.Fandom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fandom, ok := f.fandoms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return fandom, nil
}

func (f fakeFandoms) ListByGame(_ context.Context, gameID int64) ([]models.Fandom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Fandom
	for _, fandom := range f.fandoms {
		if fandom.GameID == gameID {
			out = append(out, *fandom)
		}
	}
	return out, nil
}

// Delete cascades to subscriptions, notifications and viewed rows
func (f fakeFandoms) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.fandoms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.fandoms, id)
	delete(f.members, id)
	for nid, n := range f.notifications {
		if n.FandomID != id {
			continue
		}
		delete(f.notifications, nid)
		for k := range f.viewed {
			if k.notificationID == nid {
				delete(f.viewed, k)
			}
		}
	}
	return nil
}

// fakeSubscriptions implements repository.SubscriptionRepository
type fakeSubscriptions struct{ *memStore }

func (f fakeSubscriptions) Subscribe(_ context.Context, userID string, fandomID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.members[fandomID] == nil {
		f.members[fandomID] = make(map[string]time.Time)
	}
	if _, ok := f.members[fandomID][userID]; !ok {
		f.members[fandomID][userID] = time.Now()
	}
	return nil
}

func (f fakeSubscriptions) Unsubscribe(_ context.Context, userID string, fandomID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.isMember(userID, fandomID) {
		return gorm.ErrRecordNotFound
	}
	delete(f.members[fandomID], userID)
	return nil
}

func (f fakeSubscriptions) IsSubscribed(_ context.Context, userID string, fandomID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isMember(userID, fandomID), nil
}

func (f fakeSubscriptions) GetUserIDsByFandomID(_ context.Context, fandomID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMembers != nil {
		return nil, f.failMembers
	}
	var ids []string
	for u := range f.members[fandomID] {
		ids = append(ids, u)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f fakeSubscriptions) GetFandomIDsByUserID(_ context.Context, userID string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for fid, users := range f.members {
		if _, ok := users[userID]; ok {
			ids = append(ids, fid)
		}
	}
	return ids, nil
}

func (f fakeSubscriptions) ListByUser(_ context.Context, userID string) ([]models.FandomSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FandomSubscription
	for fid, users := range f.members {
		if at, ok := users[userID]; ok {
			out = append(out, models.FandomSubscription{UserID: userID, FandomID: fid, SubscribedAt: at, Fandom: f.fandoms[fid]})
		}
	}
	return out, nil
}

// fakeNotifications implements repository.NotificationRepository
type fakeNotifications struct{ *memStore }

func (f fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNotificationCreate != nil {
		return f.failNotificationCreate
	}
	n.ID = f.id()
	cp := *n
	f.notifications[n.ID] = &cp
	return nil
}

func (f fakeNotifications) GetVisibleByID(_ context.Context, userID string, id int64) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok || !f.isMember(userID, n.FandomID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

// ListVisible returns rows in id order; ordering is the service's job
func (f fakeNotifications) ListVisible(_ context.Context, userID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if f.isMember(userID, n.FandomID) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeViewed implements repository.ViewedRepository with the same conflict rules as postgres
type fakeViewed struct{ *memStore }

func (f fakeViewed) InsertIfAbsent(_ context.Context, notificationID int64, userID string, viewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failViewedWrite[notificationID]; err != nil {
		return err
	}
	k := viewedKey{notificationID, userID}
	if _, ok := f.viewed[k]; ok {
		return nil
	}
	f.viewed[k] = &models.NotificationViewed{ID: f.id(), NotificationID: notificationID, UserID: userID, ViewedAt: viewedAt}
	return nil
}

func (f fakeViewed) DeleteIfNotHidden(_ context.Context, notificationID int64, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failViewedWrite[notificationID]; err != nil {
		return err
	}
	k := viewedKey{notificationID, userID}
	if row, ok := f.viewed[k]; ok && !row.IsHidden {
		delete(f.viewed, k)
	}
	return nil
}

func (f fakeViewed) UpsertHidden(_ context.Context, notificationID int64, userID string, hidden bool, viewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failViewedWrite[notificationID]; err != nil {
		return err
	}
	k := viewedKey{notificationID, userID}
	if row, ok := f.viewed[k]; ok {
		row.IsHidden = hidden
		return nil
	}
	f.viewed[k] = &models.NotificationViewed{ID: f.id(), NotificationID: notificationID, UserID: userID, ViewedAt: viewedAt, IsHidden: hidden}
	return nil
}

func (f fakeViewed) Get(_ context.Context, notificationID int64, userID string) (*models.NotificationViewed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.viewed[viewedKey{notificationID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (f fakeViewed) ListByUser(_ context.Context, userID string) ([]models.NotificationViewed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.NotificationViewed
	for k, row := range f.viewed {
		if k.userID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

// recordingPusher captures pushes
type recordingPusher struct {
	mu    sync.Mutex
	calls []pushCall
	err   error
}

type pushCall struct {
	userIDs []string
	event   string
	payload any
}

func (p *recordingPusher) Push(ctx context.Context, userID, event string, payload any) error {
	return p.PushMany(ctx, []string{userID}, event, payload)
}

func (p *recordingPusher) PushMany(_ context.Context, userIDs []string, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushCall{userIDs: append([]string(nil), userIDs...), event: event, payload: payload})
	return p.err
}

// fakeClock hands out strictly increasing times
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// notificationFixture wires the notification and viewed services over one memStore
type notificationFixture struct {
	store   *memStore
	pusher  *recordingPusher
	clock   *fakeClock
	notify  *notificationService
	tracker *viewedStateService
}

func newNotificationFixture() *notificationFixture {
	store := newMemStore()
	pusher := &recordingPusher{}
	clock := newFakeClock()

	notify := NewNotificationService(
		fakeNotifications{store},
		fakeViewed{store},
		fakeFandoms{store},
		fakeSubscriptions{store},
		pusher,
		nil,
	).(*notificationService)
	notify.now = clock.Now

	tracker := NewViewedStateService(fakeNotifications{store}, fakeViewed{store}, nil).(*viewedStateService)
	tracker.now = clock.Now

	return &notificationFixture{store: store, pusher: pusher, clock: clock, notify: notify, tracker: tracker}
}
