package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type memConversationRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Conversation
	created int
}

func newMemConversationRepo(conversations ...*entity.Conversation) *memConversationRepo {
	repo := &memConversationRepo{byID: make(map[string]*entity.Conversation)}
	for _, c := range conversations {
		repo.byID[c.ID] = c
	}
	return repo
}

func (r *memConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if c.ID == "" {
		c.ID = fmt.Sprintf("conv-%d", r.created)
	}
	r.byID[c.ID] = c
	return nil
}

func (r *memConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return c, nil
}

func (r *memConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	r.byID[c.ID] = c
	return nil
}

func (r *memConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Conversation
	for _, c := range r.byID {
		for _, p := range c.Participants {
			if p == userID {
				result = append(result, c)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastMessageAt.After(result[j].LastMessageAt)
	})
	return result, int64(len(result)), nil
}

func (r *memConversationRepo) WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Conversation, error) {
	return nil, errors.Internal("not supported", nil)
}

func (r *memConversationRepo) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

type memMessageRepo struct {
	mu       sync.Mutex
	convRepo *memConversationRepo
	messages []*entity.Message
}

func newMemMessageRepo(convRepo *memConversationRepo) *memMessageRepo {
	return &memMessageRepo{convRepo: convRepo}
}

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = fmt.Sprintf("msg-%d", len(r.messages)+1)
	}
	r.messages = append(r.messages, m)
	return nil
}

// CreateWithSummary mirrors the production contract: the message write and
// the conversation summary update land together.
func (r *memMessageRepo) CreateWithSummary(ctx context.Context, m *entity.Message) (*entity.Conversation, error) {
	conversation, err := r.convRepo.GetByID(ctx, m.ConversationID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if m.ID == "" {
		m.ID = fmt.Sprintf("msg-%d", len(r.messages)+1)
	}
	r.messages = append(r.messages, m)
	r.mu.Unlock()

	conversation.LastMessage = m.Content
	conversation.LastMessageAt = m.CreatedAt
	conversation.LastMessageSenderID = m.SenderID
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}
	for _, p := range conversation.Participants {
		if p != m.SenderID {
			conversation.UnreadCount[p]++
		}
	}
	conversation.UpdatedAt = time.Now()

	if err := r.convRepo.Update(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *memMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *memMessageRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.Read = true
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *memMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			result = append(result, m)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memMessageRepo) WatchByConversation(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	return nil, errors.Internal("not supported", nil)
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) UpdatePresence(ctx context.Context, userID, onlineStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.OnlineStatus = onlineStatus
		u.LastSeen = time.Now()
	}
	return nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = fmt.Sprintf("notif-%d", len(r.notifications)+1)
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *memNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *memNotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.notifications {
		if existing.ID == n.ID {
			r.notifications[i] = n
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *memNotificationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memNotificationRepo) WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Notification, error) {
	return nil, errors.Internal("not supported", nil)
}

func (r *memNotificationRepo) forUser(userID string) []*entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

type memPropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*entity.Property
	created    int
}

func newMemPropertyRepo(properties ...*entity.Property) *memPropertyRepo {
	repo := &memPropertyRepo{properties: make(map[string]*entity.Property)}
	for _, p := range properties {
		repo.properties[p.ID] = p
	}
	return repo
}

func (r *memPropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if p.ID == "" {
		p.ID = fmt.Sprintf("prop-%d", r.created)
	}
	r.properties[p.ID] = p
	return nil
}

func (r *memPropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, errors.NotFound("Property", nil)
	}
	return p, nil
}

func (r *memPropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[p.ID] = p
	return nil
}

func (r *memPropertyRepo) List(ctx context.Context, filter repository.PropertyFilter, limit, offset int) ([]*entity.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Property
	for _, p := range r.properties {
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.City != "" && p.City != filter.City {
			continue
		}
		result = append(result, p)
	}
	return result, int64(len(result)), nil
}

func (r *memPropertyRepo) CountBySellerID(ctx context.Context, sellerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.properties {
		if p.SellerID == sellerID && p.Status != "archived" {
			count++
		}
	}
	return count, nil
}

func (r *memPropertyRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.properties[id]; ok {
		p.Views++
	}
	return nil
}

type memTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
	created      int
}

func newMemTransactionRepo(transactions ...*entity.Transaction) *memTransactionRepo {
	repo := &memTransactionRepo{transactions: make(map[string]*entity.Transaction)}
	for _, t := range transactions {
		repo.transactions[t.ID] = t
	}
	return repo
}

func (r *memTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if t.ID == "" {
		t.ID = fmt.Sprintf("txn-%d", r.created)
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	return t, nil
}

func (r *memTransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.ID] = t
	return nil
}

func (r *memTransactionRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Transaction
	for _, t := range r.transactions {
		if t.BuyerID == userID || t.SellerID == userID {
			result = append(result, t)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memTransactionRepo) ListBySellerID(ctx context.Context, sellerID string, status string) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Transaction
	for _, t := range r.transactions {
		if t.SellerID == sellerID && (status == "" || t.Status == status) {
			result = append(result, t)
		}
	}
	return result, nil
}

type memWithdrawalRepo struct {
	mu          sync.Mutex
	withdrawals map[string]*entity.WithdrawalRequest
	created     int
}

func newMemWithdrawalRepo(withdrawals ...*entity.WithdrawalRequest) *memWithdrawalRepo {
	repo := &memWithdrawalRepo{withdrawals: make(map[string]*entity.WithdrawalRequest)}
	for _, w := range withdrawals {
		repo.withdrawals[w.ID] = w
	}
	return repo
}

func (r *memWithdrawalRepo) Create(ctx context.Context, w *entity.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if w.ID == "" {
		w.ID = fmt.Sprintf("wd-%d", r.created)
	}
	r.withdrawals[w.ID] = w
	return nil
}

func (r *memWithdrawalRepo) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return nil, errors.NotFound("Withdrawal request", nil)
	}
	return w, nil
}

func (r *memWithdrawalRepo) Update(ctx context.Context, w *entity.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdrawals[w.ID] = w
	return nil
}

func (r *memWithdrawalRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.WithdrawalRequest
	for _, w := range r.withdrawals {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (r *memWithdrawalRepo) ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.WithdrawalRequest
	for _, w := range r.withdrawals {
		if w.Status == "pending" {
			result = append(result, w)
		}
	}
	return result, nil
}

type memSavedPropertyRepo struct {
	mu      sync.Mutex
	items   map[string]*entity.SavedProperty
	created int
}

func newMemSavedPropertyRepo() *memSavedPropertyRepo {
	return &memSavedPropertyRepo{items: make(map[string]*entity.SavedProperty)}
}

func savedKey(userID, propertyID string) string {
	return userID + "/" + propertyID
}

func (r *memSavedPropertyRepo) Create(ctx context.Context, item *entity.SavedProperty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if item.ID == "" {
		item.ID = fmt.Sprintf("saved-%d", r.created)
	}
	r.items[savedKey(item.UserID, item.PropertyID)] = item
	return nil
}

func (r *memSavedPropertyRepo) Delete(ctx context.Context, userID, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, savedKey(userID, propertyID))
	return nil
}

func (r *memSavedPropertyRepo) GetByUserAndProperty(ctx context.Context, userID, propertyID string) (*entity.SavedProperty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[savedKey(userID, propertyID)]
	if !ok {
		return nil, errors.NotFound("Saved property", nil)
	}
	return item, nil
}

func (r *memSavedPropertyRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedProperty, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.SavedProperty
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, int64(len(result)), nil
}

type memAlerter struct {
	mu     sync.Mutex
	frames map[string][][]byte
}

func newMemAlerter() *memAlerter {
	return &memAlerter{frames: make(map[string][][]byte)}
}

func (a *memAlerter) SendToUser(userID string, message []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frames[userID] = append(a.frames[userID], message)
}

func (a *memAlerter) countFor(userID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.frames[userID])
}
