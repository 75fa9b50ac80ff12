package store

import (
	"context"
	"sync"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/pkg/errors"
)

// fakeNotificationRepo feeds snapshots through a channel like a live query
// would and records writes.
type fakeNotificationRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Notification
	updated  []string
	failIDs  map[string]bool
	snapshot chan []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		byID:     make(map[string]*entity.Notification),
		failIDs:  make(map[string]bool),
		snapshot: make(chan []*entity.Notification),
	}
}

func (f *fakeNotificationRepo) push(items []*entity.Notification) {
	f.mu.Lock()
	for _, n := range items {
		copied := *n
		f.byID[n.ID] = &copied
	}
	f.mu.Unlock()
	f.snapshot <- items
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[n.ID] {
		return errors.Internal("write failed", nil)
	}
	f.byID[n.ID] = n
	f.updated = append(f.updated, n.ID)
	return nil
}

func (f *fakeNotificationRepo) updatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.updated))
	copy(ids, f.updated)
	return ids
}

func (f *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Notification, error) {
	return f.snapshot, nil
}

// fakeAlertSender records pushed frames.
type fakeAlertSender struct {
	mu     sync.Mutex
	frames [][]byte
}

func (f *fakeAlertSender) SendToUser(userID string, message []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, message)
}

func (f *fakeAlertSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

// fakeConversationRepo feeds conversation snapshots through a channel.
type fakeConversationRepo struct {
	snapshot chan []*entity.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		snapshot: make(chan []*entity.Conversation),
	}
}

func (f *fakeConversationRepo) Create(ctx context.Context, c *entity.Conversation) error { return nil }

func (f *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	return nil, errors.NotFound("Conversation", nil)
}

func (f *fakeConversationRepo) Update(ctx context.Context, c *entity.Conversation) error { return nil }

func (f *fakeConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	return nil, 0, nil
}

func (f *fakeConversationRepo) WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Conversation, error) {
	return f.snapshot, nil
}

// fakeUserRepo resolves profiles and counts lookups.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	lookups map[string]int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{
		users:   make(map[string]*entity.User),
		lookups: make(map[string]int),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups[id]++
	u, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

func (f *fakeUserRepo) UpdatePresence(ctx context.Context, userID, onlineStatus string) error {
	return nil
}

func (f *fakeUserRepo) lookupCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups[id]
}

// fakeMessageRepo feeds message snapshots and records MarkRead calls.
type fakeMessageRepo struct {
	mu       sync.Mutex
	marked   []string
	snapshot chan []*entity.Message
	markedCh chan string
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		snapshot: make(chan []*entity.Message),
		markedCh: make(chan string, 16),
	}
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *entity.Message) error { return nil }

func (f *fakeMessageRepo) CreateWithSummary(ctx context.Context, m *entity.Message) (*entity.Conversation, error) {
	return nil, errors.Internal("not implemented", nil)
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	return nil, errors.NotFound("Message", nil)
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, id string) error {
	f.mu.Lock()
	f.marked = append(f.marked, id)
	f.mu.Unlock()
	f.markedCh <- id
	return nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	return nil, 0, nil
}

func (f *fakeMessageRepo) WatchByConversation(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	return f.snapshot, nil
}
