package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/server/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequireAuth(t *testing.T) {
	secret := []byte("test-secret")
	s := &Server{jwtSecret: secret}

	r := gin.New()
	r.GET("/whoami", s.requireAuth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client_id": clientID(c)})
	})

	token, err := auth.GenerateToken(42, secret, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"client_id":42`)
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	s := &Server{jwtSecret: secret}

	r := gin.New()
	r.GET("/whoami", s.requireAuth, func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := auth.GenerateToken(42, secret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{common.ErrInvalidAmount, http.StatusBadRequest},
		{common.ErrMinimumNotMet, http.StatusBadRequest},
		{common.ErrSelfTransfer, http.StatusBadRequest},
		{common.ErrInvalidOrExpiredCode, http.StatusBadRequest},
		{common.ErrAuthentication, http.StatusUnauthorized},
		{common.ErrorNotFound, http.StatusNotFound},
		{common.ErrRecipientNotFound, http.StatusNotFound},
		{common.ErrConflict, http.StatusConflict},
		{common.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{common.ErrAlreadyRedeemed, http.StatusUnprocessableEntity},
		{common.ErrorInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestRegister_InvalidBody(t *testing.T) {
	s := &Server{}
	r := gin.New()
	r.POST("/api/register", s.register)

	body := strings.NewReader(`{"name": "Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
