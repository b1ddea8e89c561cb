package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal entry type tags. Kept in the bank's native labels as shown on
// statements.
const (
	TxDeposit          = "Depósito"
	TxWithdrawal       = "Saque"
	TxTransferSent     = "Transferência Enviada"
	TxTransferReceived = "Transferência Recebida"
	TxPixSent          = "Pix Enviado"
	TxPixReceived      = "Pix Recebido"
	TxBillPayment      = "Pagamento Boleto"
	TxInvoicePayment   = "Pagamento Fatura"
	TxInvestment       = "Aplicação Investimento"
	TxRedemption       = "Resgate Investimento"
)

// CategoryDefault is applied when the caller supplies no category.
const CategoryDefault = "Outros"

// Transaction is one journal entry: a signed amount movement on a single
// account. Entries are immutable once written. For a transfer exactly two
// entries exist, on two different accounts, summing to zero.
type Transaction struct {
	ID            int64
	AccountNumber int64
	Type          string
	Amount        decimal.Decimal
	CreatedAt     time.Time
	Description   string
	Category      string
}
