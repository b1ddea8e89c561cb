package services

// Shared in-memory fakes used by the service tests. They keep just enough
// state for the scenarios to observe balance changes and journal entries;
// transaction rollback is exercised separately in the dbx package tests.

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/server/models"
	accountsrepo "github.com/thaliumbank/thalium/internal/server/repositories/accounts"
	auditlogsrepo "github.com/thaliumbank/thalium/internal/server/repositories/auditlogs"
	cardsrepo "github.com/thaliumbank/thalium/internal/server/repositories/cards"
	clientsrepo "github.com/thaliumbank/thalium/internal/server/repositories/clients"
	investmentsrepo "github.com/thaliumbank/thalium/internal/server/repositories/investments"
	loansrepo "github.com/thaliumbank/thalium/internal/server/repositories/loans"
	pixkeysrepo "github.com/thaliumbank/thalium/internal/server/repositories/pixkeys"
	transactionsrepo "github.com/thaliumbank/thalium/internal/server/repositories/transactions"
	verificationcodesrepo "github.com/thaliumbank/thalium/internal/server/repositories/verificationcodes"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// --- accounts ---

type fakeAccountsRepo struct {
	byNumber map[int64]*models.Account
	err      error
}

func (f *fakeAccountsRepo) get(number int64) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	acc, ok := f.byNumber[number]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	a.Number = int64(len(f.byNumber) + 1)
	f.byNumber[a.Number] = a
	return a, nil
}
func (f *fakeAccountsRepo) GetByNumber(ctx context.Context, n int64) (*models.Account, error) {
	return f.get(n)
}
func (f *fakeAccountsRepo) GetForUpdate(ctx context.Context, n int64) (*models.Account, error) {
	return f.get(n)
}
func (f *fakeAccountsRepo) GetPrimaryByClientID(ctx context.Context, clientID int64) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	var best *models.Account
	for _, a := range f.byNumber {
		if a.ClientID == clientID && (best == nil || a.Number < best.Number) {
			best = a
		}
	}
	if best == nil {
		return nil, common.ErrorNotFound
	}
	cp := *best
	return &cp, nil
}
func (f *fakeAccountsRepo) UpdateBalance(ctx context.Context, n int64, b decimal.Decimal) error {
	acc, ok := f.byNumber[n]
	if !ok {
		return common.ErrorNotFound
	}
	acc.Balance = b
	return nil
}

// --- transactions ---

type fakeTransactionsRepo struct {
	entries   []*models.Transaction
	createErr error
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	tx.ID = int64(len(f.entries) + 1)
	tx.CreatedAt = time.Now()
	if tx.Category == "" {
		tx.Category = models.CategoryDefault
	}
	f.entries = append(f.entries, tx)
	return tx, nil
}
func (f *fakeTransactionsRepo) ListByAccount(ctx context.Context, n int64, limit, offset int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].AccountNumber == n {
			out = append(out, f.entries[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// byAccount filters all recorded entries for one account, oldest first.
func (f *fakeTransactionsRepo) byAccount(n int64) []*models.Transaction {
	var out []*models.Transaction
	for _, e := range f.entries {
		if e.AccountNumber == n {
			out = append(out, e)
		}
	}
	return out
}

// --- clients ---

type fakeClientsRepo struct {
	byID    map[int64]*models.Client
	byEmail map[string]*models.Client
	err     error
}

func (f *fakeClientsRepo) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, dup := f.byEmail[c.Email]; dup {
		return nil, common.ErrConflict
	}
	c.ID = int64(len(f.byID) + 1)
	f.byID[c.ID] = c
	f.byEmail[c.Email] = c
	return c, nil
}
func (f *fakeClientsRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}
func (f *fakeClientsRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}
func (f *fakeClientsRepo) SetActive(ctx context.Context, id int64) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.Active = true
	return nil
}
func (f *fakeClientsRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.PasswordHash = hash
	return nil
}
func (f *fakeClientsRepo) UpdatePINHash(ctx context.Context, id int64, hash string) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.PINHash = hash
	return nil
}

// --- cards ---

type fakeCardsRepo struct {
	byID map[int64]*models.Card
}

func (f *fakeCardsRepo) Create(ctx context.Context, c *models.Card) (*models.Card, error) {
	c.ID = int64(len(f.byID) + 1)
	f.byID[c.ID] = c
	return c, nil
}
func (f *fakeCardsRepo) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}
func (f *fakeCardsRepo) GetForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeCardsRepo) ListByClientID(ctx context.Context, clientID int64) ([]*models.Card, error) {
	var out []*models.Card
	for _, c := range f.byID {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCardsRepo) UpdateLimitUsed(ctx context.Context, id int64, used decimal.Decimal) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.LimitUsed = used
	return nil
}
func (f *fakeCardsRepo) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.Blocked = blocked
	return nil
}

// --- pix keys ---

type fakePixKeysRepo struct {
	byKey map[string]*models.PixKey
}

func (f *fakePixKeysRepo) Create(ctx context.Context, k *models.PixKey) (*models.PixKey, error) {
	if _, dup := f.byKey[k.Key]; dup {
		return nil, common.ErrConflict
	}
	k.ID = int64(len(f.byKey) + 1)
	f.byKey[k.Key] = k
	return k, nil
}
func (f *fakePixKeysRepo) GetByKey(ctx context.Context, key string) (*models.PixKey, error) {
	k, ok := f.byKey[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return k, nil
}
func (f *fakePixKeysRepo) ListByClientID(ctx context.Context, clientID int64) ([]*models.PixKey, error) {
	var out []*models.PixKey
	for _, k := range f.byKey {
		if k.ClientID == clientID {
			out = append(out, k)
		}
	}
	return out, nil
}
func (f *fakePixKeysRepo) Delete(ctx context.Context, id, clientID int64) error {
	for key, k := range f.byKey {
		if k.ID == id && k.ClientID == clientID {
			delete(f.byKey, key)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- investments ---

type fakeInvestmentsRepo struct {
	byID map[int64]*models.Investment
}

func (f *fakeInvestmentsRepo) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	inv.ID = int64(len(f.byID) + 1)
	if inv.AppliedAt.IsZero() {
		inv.AppliedAt = time.Now()
	}
	f.byID[inv.ID] = inv
	return inv, nil
}
func (f *fakeInvestmentsRepo) GetByID(ctx context.Context, id int64) (*models.Investment, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *inv
	return &cp, nil
}
func (f *fakeInvestmentsRepo) GetForUpdate(ctx context.Context, id int64) (*models.Investment, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeInvestmentsRepo) MarkRedeemed(ctx context.Context, id int64) error {
	inv, ok := f.byID[id]
	if !ok || inv.Redeemed {
		return common.ErrAlreadyRedeemed
	}
	inv.Redeemed = true
	return nil
}
func (f *fakeInvestmentsRepo) ListByClientID(ctx context.Context, clientID int64) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range f.byID {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (f *fakeInvestmentsRepo) ListActive(ctx context.Context) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range f.byID {
		if !inv.Redeemed {
			out = append(out, inv)
		}
	}
	return out, nil
}

// --- loans ---

type fakeLoansRepo struct {
	loans []*models.Loan
}

func (f *fakeLoansRepo) Create(ctx context.Context, l *models.Loan) (*models.Loan, error) {
	l.ID = int64(len(f.loans) + 1)
	f.loans = append(f.loans, l)
	return l, nil
}
func (f *fakeLoansRepo) ListByAccount(ctx context.Context, n int64) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, l := range f.loans {
		if l.AccountNumber == n {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- verification codes ---

type fakeCodesRepo struct {
	codes []*models.VerificationCode
}

func (f *fakeCodesRepo) Create(ctx context.Context, c *models.VerificationCode) (*models.VerificationCode, error) {
	c.ID = int64(len(f.codes) + 1)
	c.CreatedAt = time.Now()
	f.codes = append(f.codes, c)
	return c, nil
}
func (f *fakeCodesRepo) Consume(ctx context.Context, email, code, purpose string, now time.Time) (bool, error) {
	for _, c := range f.codes {
		if c.Email == email && c.Code == code && c.Purpose == purpose && !c.Used && c.ExpiresAt.After(now) {
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}

// --- audit logs ---

type fakeAuditRepo struct {
	entries   []*models.AuditLogEntry
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, e *models.AuditLogEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, e)
	return nil
}

// --- repo manager ---

type fakeRepoManager struct {
	accounts     *fakeAccountsRepo
	transactions *fakeTransactionsRepo
	clients      *fakeClientsRepo
	cards        *fakeCardsRepo
	pixKeys      *fakePixKeysRepo
	investments  *fakeInvestmentsRepo
	loans        *fakeLoansRepo
	codes        *fakeCodesRepo
	audit        *fakeAuditRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts:     &fakeAccountsRepo{byNumber: map[int64]*models.Account{}},
		transactions: &fakeTransactionsRepo{},
		clients:      &fakeClientsRepo{byID: map[int64]*models.Client{}, byEmail: map[string]*models.Client{}},
		cards:        &fakeCardsRepo{byID: map[int64]*models.Card{}},
		pixKeys:      &fakePixKeysRepo{byKey: map[string]*models.PixKey{}},
		investments:  &fakeInvestmentsRepo{byID: map[int64]*models.Investment{}},
		loans:        &fakeLoansRepo{},
		codes:        &fakeCodesRepo{},
		audit:        &fakeAuditRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Clients(db dbx.DBTX) clientsrepo.Repository   { return m.clients }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return m.transactions
}
func (m *fakeRepoManager) Cards(db dbx.DBTX) cardsrepo.Repository             { return m.cards }
func (m *fakeRepoManager) PixKeys(db dbx.DBTX) pixkeysrepo.Repository         { return m.pixKeys }
func (m *fakeRepoManager) Investments(db dbx.DBTX) investmentsrepo.Repository { return m.investments }
func (m *fakeRepoManager) Loans(db dbx.DBTX) loansrepo.Repository             { return m.loans }
func (m *fakeRepoManager) VerificationCodes(db dbx.DBTX) verificationcodesrepo.Repository {
	return m.codes
}
func (m *fakeRepoManager) AuditLogs(db dbx.DBTX) auditlogsrepo.Repository { return m.audit }
