package api

// Handlers for the bank's products: investments, loans and PIX keys.

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thaliumbank/thalium/internal/money"
)

type subscribeRequest struct {
	Amount     string `json:"amount" binding:"required"`
	Instrument string `json:"instrument" binding:"required"`
}

func (s *Server) subscribeInvestment(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	inv, err := s.investments.Subscribe(c.Request.Context(), clientID(c), amount, req.Instrument)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         inv.ID,
		"instrument": inv.Instrument,
		"principal":  money.String(inv.Principal),
		"applied_at": inv.AppliedAt,
	})
}

func (s *Server) redeemInvestment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid investment id")
		return
	}
	value, err := s.investments.Redeem(c.Request.Context(), clientID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redeemed": money.String(value)})
}

func (s *Server) listInvestments(c *gin.Context) {
	list, err := s.investments.List(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, inv := range list {
		out = append(out, gin.H{
			"id":          inv.ID,
			"instrument":  inv.Instrument,
			"principal":   money.String(inv.Principal),
			"annual_rate": inv.AnnualRate.String(),
			"applied_at":  inv.AppliedAt,
			"redeemed":    inv.Redeemed,
		})
	}
	c.JSON(http.StatusOK, gin.H{"investments": out})
}

type loanRequest struct {
	Amount     string `json:"amount" binding:"required"`
	TermMonths int    `json:"term_months" binding:"required"`
}

func (s *Server) requestLoan(c *gin.Context) {
	var req loanRequest
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
	loan, err := s.loans.Request(c.Request.Context(), clientID(c), acc.Number, amount, req.TermMonths)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        loan.ID,
		"principal": money.String(loan.Principal),
		"rate":      loan.Rate.String(),
		"due_at":    loan.DueAt,
		"status":    loan.Status,
	})
}

func (s *Server) listLoans(c *gin.Context) {
	acc, err := s.banking.PrimaryAccount(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	list, err := s.loans.ListByAccount(c.Request.Context(), acc.Number)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, l := range list {
		out = append(out, gin.H{
			"id":          l.ID,
			"principal":   money.String(l.Principal),
			"rate":        l.Rate.String(),
			"term_months": l.TermMonths,
			"issued_at":   l.IssuedAt,
			"due_at":      l.DueAt,
			"status":      l.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"loans": out})
}

type pixKeyRequest struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value"`
}

func (s *Server) registerPixKey(c *gin.Context) {
	var req pixKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	key, err := s.pix.RegisterKey(c.Request.Context(), clientID(c), req.Type, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": key.ID, "type": key.Type, "key": key.Key})
}

func (s *Server) listPixKeys(c *gin.Context) {
	keys, err := s.pix.List(c.Request.Context(), clientID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(keys))
	for _, k := range keys {
		out = append(out, gin.H{"id": k.ID, "type": k.Type, "key": k.Key})
	}
	c.JSON(http.StatusOK, gin.H{"keys": out})
}

func (s *Server) deletePixKey(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid key id")
		return
	}
	if err := s.pix.Delete(c.Request.Context(), clientID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
