package repomanager

import (
	"context"
	"database/sql"

	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/server/repositories/accounts"
	"github.com/thaliumbank/thalium/internal/server/repositories/auditlogs"
	"github.com/thaliumbank/thalium/internal/server/repositories/cards"
	"github.com/thaliumbank/thalium/internal/server/repositories/clients"
	"github.com/thaliumbank/thalium/internal/server/repositories/investments"
	"github.com/thaliumbank/thalium/internal/server/repositories/loans"
	"github.com/thaliumbank/thalium/internal/server/repositories/pixkeys"
	"github.com/thaliumbank/thalium/internal/server/repositories/transactions"
	"github.com/thaliumbank/thalium/internal/server/repositories/verificationcodes"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// several repositories against the same transaction handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Clients(db dbx.DBTX) clients.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Cards(db dbx.DBTX) cards.Repository
	PixKeys(db dbx.DBTX) pixkeys.Repository
	Investments(db dbx.DBTX) investments.Repository
	Loans(db dbx.DBTX) loans.Repository
	VerificationCodes(db dbx.DBTX) verificationcodes.Repository
	AuditLogs(db dbx.DBTX) auditlogs.Repository
}
