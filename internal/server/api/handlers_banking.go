package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thaliumbank/thalium/internal/money"
	"github.com/thaliumbank/thalium/internal/server/models"
)

func (s *Server) balance(c *gin.Context) {
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account": acc.Number,
		"balance": money.String(acc.Balance),
	})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (s *Server) deposit(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := s.banking.Deposit(c.Request.Context(), acc.Number, amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": money.String(balance)})
}

func (s *Server) withdraw(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := s.banking.Withdraw(c.Request.Context(), acc.Number, amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": money.String(balance)})
}

type transferRequest struct {
	Recipient   string `json:"recipient" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PIN         string `json:"pin" binding:"required"`
}

func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := s.banking.Transfer(c.Request.Context(), acc.Number,
		req.Recipient, amount, req.Description, req.Category, req.PIN)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": money.String(balance)})
}

type payBillRequest struct {
	Amount  string `json:"amount" binding:"required"`
	Barcode string `json:"barcode" binding:"required"`
}

func (s *Server) payBill(c *gin.Context) {
	var req payBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := s.banking.PayBill(c.Request.Context(), acc.Number, amount, req.Barcode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": money.String(balance)})
}

func (s *Server) payCardInvoice(c *gin.Context) {
	cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid card id")
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := s.banking.PayCardInvoice(c.Request.Context(), clientID(c), cardID, amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": money.String(balance)})
}

type statementEntry struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"created_at"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

func toStatementEntries(entries []*models.Transaction) []statementEntry {
	out := make([]statementEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, statementEntry{
			ID:          e.ID,
			Type:        e.Type,
			Amount:      money.String(e.Amount),
			CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Description: e.Description,
			Category:    e.Category,
		})
	}
	return out
}

func (s *Server) statement(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		badRequest(c, "invalid page")
		return
	}
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := s.banking.GetStatement(c.Request.Context(), acc.Number, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "entries": toStatementEntries(entries)})
}
