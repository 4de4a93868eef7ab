package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpro-api/internal/util"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidTokenSetsUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := util.GenerateToken("user-1", "Ana Silva", testSecret, time.Hour)
	require.NoError(t, err)

	var userID string
	var tokenKeySet bool
	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		userID = c.GetString("user_id")
		_, tokenKeySet = c.Get("jwtToken")
		c.Status(http.StatusOK)
	})

	w := serve(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", userID)
	// Only the identity rides in the request context; the raw token is not
	// forwarded anywhere
	assert.False(t, tokenKeySet)
}

func TestAuth_RejectsMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter()

	w := serve(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	r := newAuthRouter()

	token, err := util.GenerateToken("user-1", "Ana Silva", "other-secret", time.Hour)
	require.NoError(t, err)

	w := serve(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
