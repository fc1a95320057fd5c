package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestCheckAdminAuthHeaderWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/campaigns/c1?token=wrong", nil)
	req.Header.Set("X-Admin-Token", "secret")
	c := newTestContext(req)
	assert.True(t, checkAdminAuth(c, "secret"))
}

func TestCheckAdminAuthQueryFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/campaigns/c1?token=secret", nil)
	c := newTestContext(req)
	assert.True(t, checkAdminAuth(c, "secret"))
}

func TestCheckAdminAuthDefaultWhenUnconfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/campaigns/c1?token="+DefaultAdminToken, nil)
	c := newTestContext(req)
	assert.True(t, checkAdminAuth(c, ""))
}

func TestCheckAdminAuthRejectsWrongToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/campaigns/c1?token=nope", nil)
	c := newTestContext(req)
	assert.False(t, checkAdminAuth(c, "secret"))
}
