package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_backend/internal/platform/logging"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// serve runs one request through RequestID and returns the response and the ID seen by the handler.
func serve(t *testing.T, incoming string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		seen, _ = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	w, seen := serve(t, "")

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "generated ID should be a UUID")
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	w, seen := serve(t, "client-id-42")

	assert.Equal(t, "client-id-42", seen)
	assert.Equal(t, "client-id-42", w.Header().Get(RequestIDHeader))
}

func TestRequestID_TooLongIsReplaced(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", maxRequestIDLen+1)
	w, seen := serve(t, long)

	assert.NotEqual(t, long, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	_, first := serve(t, "")
	_, second := serve(t, "")

	assert.NotEqual(t, first, second)
}
