package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/router"
	"github.com/inkwell-gg/backend/pkg/testutil"
)

type greetRequest struct {
	Name string `json:"name" form:"name"`
}

type greetResponse struct {
	Reply string `json:"reply"`
}

func greet(ctx context.Context, req *greetRequest) (*greetResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	return &greetResponse{Reply: "hello " + req.Name}, nil
}

func Test_Router_BindQuery(t *testing.T) {
	r := router.New(testutil.MockContext(t))
	router.GET(r, "/greet", greet)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/greet?name=alice", nil)
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
	require.Contains(t, w.Body.String(), "hello alice")
}

func Test_Router_BindJSON(t *testing.T) {
	r := router.New(testutil.MockContext(t))
	router.POST(r, "/greet", greet)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(`{"name": "bob"}`))
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hello bob")
}

func Test_Router_ErrorEnvelope(t *testing.T) {
	r := router.New(testutil.MockContext(t))
	router.POST(r, "/greet", greet)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(`{}`))
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), `"success":true`)
	require.Contains(t, w.Body.String(), "Name is required")
}

func Test_Router_BranchMiddleware(t *testing.T) {
	r := router.New(testutil.MockContext(t))
	router.GET(r, "/open", greet)

	guarded := r.Branch()
	guarded.Before(func(ctx context.Context, req *http.Request) (context.Context, error) {
		return nil, errorx.New(errorx.PermissionDenied, "Missing user id")
	})
	router.GET(guarded, "/guarded", greet)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open?name=carol", nil))
	require.Contains(t, w.Body.String(), "hello carol")

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded?name=carol", nil))
	require.Contains(t, w.Body.String(), "Missing user id")
}
