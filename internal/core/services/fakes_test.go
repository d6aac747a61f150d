package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory fakes of the persistence interfaces. They return copies so a
// service that forgets to call Update does not mutate the stored state.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByAuth0ID(_ context.Context, auth0ID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Auth0ID != nil && *user.Auth0ID == auth0ID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.User
	for _, user := range r.users {
		if filter.Batch != "" && user.Batch != filter.Batch {
			continue
		}
		if filter.PassingYear != 0 && user.PassingYear != filter.PassingYear {
			continue
		}
		if filter.Role != "" && !user.Roles.Has(filter.Role) {
			continue
		}
		if filter.ActiveOnly && !user.IsActive {
			continue
		}
		copied := *user
		matched = append(matched, &copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) Search(_ context.Context, term string, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.User
	for _, user := range r.users {
		if strings.Contains(user.FirstName, term) ||
			strings.Contains(user.LastName, term) ||
			strings.Contains(user.Email, term) {
			copied := *user
			matched = append(matched, &copied)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

type fakeCounterRepo struct {
	mu    sync.Mutex
	value int
}

func (r *fakeCounterRepo) Next(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value++
	return r.value, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uint]*models.MembershipRequest
	history  []models.MembershipStatusHistory
	nextID   uint
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uint]*models.MembershipRequest)}
}

func (r *fakeRequestRepo) Create(_ context.Context, request *models.MembershipRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	request.ID = r.nextID
	request.CreatedAt = time.Now()
	stored := *request
	r.requests[request.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id uint) (*models.MembershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) GetByUserID(_ context.Context, userID uint) (*models.MembershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.MembershipRequest
	for _, request := range r.requests {
		if request.UserID != userID {
			continue
		}
		if latest == nil || request.ID > latest.ID {
			latest = request
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeRequestRepo) FindActiveByUserID(_ context.Context, userID uint) (*models.MembershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.UserID != userID {
			continue
		}
		for _, status := range domain.ActiveMembershipStatuses {
			if request.Status == status {
				copied := *request
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) List(_ context.Context, status *domain.MembershipStatus, offset, limit int) ([]*models.MembershipRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.MembershipRequest
	for _, request := range r.requests {
		if status != nil && request.Status != *status {
			continue
		}
		copied := *request
		matched = append(matched, &copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request *models.MembershipRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *request
	r.requests[request.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) AppendHistory(_ context.Context, entry *models.MembershipStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeRequestRepo) historyFor(requestID uint) []models.MembershipStatusHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.MembershipStatusHistory
	for _, entry := range r.history {
		if entry.RequestID == requestID {
			out = append(out, entry)
		}
	}
	return out
}

type fakeTxRepo struct {
	mu      sync.Mutex
	txs     map[uint]*models.FinancialTransaction
	history []models.TransactionStatusHistory
	nextID  uint
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: make(map[uint]*models.FinancialTransaction)}
}

func (r *fakeTxRepo) Create(_ context.Context, tx *models.FinancialTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.ID = r.nextID
	stored := *tx
	r.txs[tx.ID] = &stored
	return nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, id uint) (*models.FinancialTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTxRepo) Update(_ context.Context, tx *models.FinancialTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *tx
	r.txs[tx.ID] = &stored
	return nil
}

func (r *fakeTxRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.txs, id)
	return nil
}

func (r *fakeTxRepo) List(_ context.Context, filter repositories.TransactionFilter, offset, limit int) ([]*models.FinancialTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.FinancialTransaction
	for _, tx := range r.txs {
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && tx.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && (tx.Category == nil || *tx.Category != *filter.Category) {
			continue
		}
		if filter.CreatedBy != nil && tx.CreatedBy != *filter.CreatedBy {
			continue
		}
		copied := *tx
		matched = append(matched, &copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeTxRepo) AppendHistory(_ context.Context, entry *models.TransactionStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeTxRepo) historyFor(txID uint) []models.TransactionStatusHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TransactionStatusHistory
	for _, entry := range r.history {
		if entry.TransactionID == txID {
			out = append(out, entry)
		}
	}
	return out
}

func (r *fakeTxRepo) SumByTypeAndStatus(_ context.Context, txType domain.TransactionType, status domain.TransactionStatus, _, _ *time.Time) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	var count int64
	for _, tx := range r.txs {
		if tx.Type == txType && tx.Status == status {
			total += tx.Amount
			count++
		}
	}
	return total, count, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[string]*models.Setting
	nextID   uint
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[string]*models.Setting)}
}

func (r *fakeSettingsRepo) Create(_ context.Context, setting *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	setting.ID = r.nextID
	stored := *setting
	r.settings[setting.Key] = &stored
	return nil
}

func (r *fakeSettingsRepo) FindByKey(_ context.Context, key string) (*models.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.settings[key]
	if !ok {
		return nil, nil
	}
	copied := *setting
	return &copied, nil
}

func (r *fakeSettingsRepo) FindActiveByKey(ctx context.Context, key string) (*models.Setting, error) {
	setting, err := r.FindByKey(ctx, key)
	if err != nil || setting == nil || !setting.IsActive {
		return nil, err
	}
	return setting, nil
}

func (r *fakeSettingsRepo) List(_ context.Context) ([]*models.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Setting
	for _, setting := range r.settings {
		copied := *setting
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, setting *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *setting
	r.settings[setting.Key] = &stored
	return nil
}

func (r *fakeSettingsRepo) DeleteByKey(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.settings, key)
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = r.nextID
	stored := *token
	r.tokens[token.TokenHash] = &stored
	return nil
}

func (r *fakeTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if time.Now().After(token.ExpiresAt) {
			delete(r.tokens, hash)
		}
	}
	return nil
}

type fakeGateway struct {
	mu            sync.Mutex
	initiateErr   error
	initiateFail  bool
	verifyErr     error
	verifyInvalid bool
	initiations   int
	verifications int
}

func (g *fakeGateway) InitiatePayment(_ context.Context, req PaymentRequest) (*PaymentInitiation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initiations++
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	if g.initiateFail {
		return &PaymentInitiation{Success: false, FailReason: "store unavailable"}, nil
	}
	return &PaymentInitiation{
		Success:       true,
		TransactionID: req.OrderID,
		PaymentURL:    "https://pay.example.com/" + req.OrderID,
	}, nil
}

func (g *fakeGateway) VerifyPayment(_ context.Context, transactionID string, amount float64) (*PaymentVerification, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifications++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	if g.verifyInvalid {
		return &PaymentVerification{Valid: false}, nil
	}
	return &PaymentVerification{
		Valid:         true,
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      "BDT",
	}, nil
}

type sentMail struct {
	to         string
	status     domain.MembershipStatus
	reason     string
	paymentURL string
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (m *fakeMailer) SendMembershipStatusEmail(_ context.Context, to, _ string, status domain.MembershipStatus, reason, paymentURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, status: status, reason: reason, paymentURL: paymentURL})
	return nil
}
