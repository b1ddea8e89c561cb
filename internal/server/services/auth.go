package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/money"
	"github.com/thaliumbank/thalium/internal/server/auth"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// AuthService handles registration, activation, login and credential
// management.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	codes                       *VerificationService
	audit                       *AuditService
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	cfg                         *config.Config
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codes *VerificationService, audit *AuditService, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		codes:                       codes,
		audit:                       audit,
		log:                         log,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		cfg:                         cfg,
	}
}

// Register creates the client together with their Corrente account and first
// card in one transaction, then issues an activation code. A duplicate cpf
// or email fails with ErrConflict and creates nothing.
func (s *AuthService) Register(ctx context.Context, name, cpf, email, password string) (*models.Client, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	cardNumber, err := common.MakeRandDigits(16)
	if err != nil {
		return nil, common.ErrorInternal
	}
	cvv, err := common.MakeRandDigits(3)
	if err != nil {
		return nil, common.ErrorInternal
	}
	now := time.Now()

	var client *models.Client
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		client, err = s.repomanager.Clients(tx).Create(ctx, &models.Client{
			Name:         name,
			CPF:          cpf,
			Email:        email,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}
		if _, err := s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			ClientID: client.ID,
			Balance:  money.Zero,
			OpenedAt: now,
			Type:     models.AccountTypeCorrente,
		}); err != nil {
			return err
		}
		_, err = s.repomanager.Cards(tx).Create(ctx, &models.Card{
			Number:     cardNumber,
			Expiry:     now.AddDate(5, 0, 0).Format("01/06"),
			CVV:        cvv,
			ClientID:   client.ID,
			LimitTotal: s.cfg.CardDefaultLimit,
			LimitUsed:  money.Zero,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		s.log.Error(ctx, "registration failed", "error", err)
		return nil, common.ErrorInternal
	}

	// Mail delivery is out of scope; the code row is the contract.
	if _, err := s.codes.Issue(ctx, email, models.CodePurposeRegister); err != nil {
		s.log.Warn(ctx, "activation code issue failed", "email", email, "error", err)
	}

	s.audit.Record(ctx, client.ID, "register", fmt.Sprintf("client %s registered", cpf), "")
	return client, nil
}

// Activate flips the client active once the registration code checks out.
func (s *AuthService) Activate(ctx context.Context, email, code string) error {
	if err := s.codes.Verify(ctx, email, code, models.CodePurposeRegister); err != nil {
		return err
	}
	client, err := s.repomanager.Clients(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if err := s.repomanager.Clients(s.db).SetActive(ctx, client.ID); err != nil {
		return common.ErrorInternal
	}
	s.audit.Record(ctx, client.ID, "activate", "", "")
	return nil
}

// Authenticate checks the password and returns a signed access token.
// Unknown email, wrong password and an unactivated account all fail with
// ErrAuthentication.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *models.Client, error) {
	client, err := s.repomanager.Clients(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrAuthentication
		}
		return "", nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		return "", nil, common.ErrAuthentication
	}
	if !client.Active {
		return "", nil, common.ErrAuthentication
	}

	token, err := auth.GenerateToken(client.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, client, nil
}

// RequestPasswordReset issues a reset code for the email. To avoid leaking
// which emails exist, an unknown email is reported as success.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.repomanager.Clients(s.db).GetByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}
	if _, err := s.codes.Issue(ctx, email, models.CodePurposeReset); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// ResetPassword consumes a reset code and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.codes.Verify(ctx, email, code, models.CodePurposeReset); err != nil {
		return err
	}
	client, err := s.repomanager.Clients(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repomanager.Clients(s.db).UpdatePasswordHash(ctx, client.ID, string(hash)); err != nil {
		return common.ErrorInternal
	}
	s.audit.Record(ctx, client.ID, "password_reset", "", "")
	return nil
}

// SetTransactionPIN stores the 4-digit PIN that gates transfers. The PIN
// must be exactly four decimal digits.
func (s *AuthService) SetTransactionPIN(ctx context.Context, clientID int64, pin string) error {
	if len(pin) != 4 {
		return common.ErrAuthentication
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return common.ErrAuthentication
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repomanager.Clients(s.db).UpdatePINHash(ctx, clientID, string(hash)); err != nil {
		return common.ErrorInternal
	}
	s.audit.Record(ctx, clientID, "pin_set", "", "")
	return nil
}
