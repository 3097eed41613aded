package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/dsl"
	"github.com/reoring/valigo/middleware"
)

func userSchema() valigo.AnySchema {
	return dsl.Object(
		dsl.Field("name", dsl.String()),
		dsl.Field("age", dsl.Number()),
	)
}

func TestValidateJSON_Success(t *testing.T) {
	var got any
	handler := middleware.ValidateJSON(userSchema(), middleware.Options{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = middleware.ValidatedFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{"name":"gopher","age":13}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	m, ok := got.(map[string]any)
	require.True(t, ok, "validated value missing from context")
	assert.Equal(t, "gopher", m["name"])
}

func TestValidateJSON_BadRequest(t *testing.T) {
	handler := middleware.ValidateJSON(userSchema(), middleware.Options{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{"name":1,"age":"x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Issues []struct {
			Code string `json:"code"`
			Path string `json:"path"`
		} `json:"issues"`
	}
	require.NoError(t, gojson.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Issues, 2)
	assert.Equal(t, "invalid_type", payload.Issues[0].Code)
	assert.Equal(t, "/name", payload.Issues[0].Path)
	assert.Equal(t, "/age", payload.Issues[1].Path)
}

func TestValidateJSON_DuplicateKeyRejected(t *testing.T) {
	handler := middleware.ValidateJSON(dsl.Record(dsl.Any()), middleware.Options{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{"a":1,"a":2}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate_key")
}

func TestValidateJSON_OversizedBody(t *testing.T) {
	handler := middleware.ValidateJSON(dsl.Record(dsl.Any()), middleware.Options{MaxBytes: 32})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

	body := `{"data":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "too_large")
}

func TestValidateJSON_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	coll := middleware.NewCollector(reg)
	handler := middleware.ValidateJSON(userSchema(), middleware.Options{Metrics: coll})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	send(`{"name":"ok","age":1}`)
	send(`{"name":2,"age":"x"}`)

	assert.Equal(t, float64(1), testutil.ToFloat64(coll.ValidationsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(coll.ValidationsTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(2), testutil.ToFloat64(coll.IssuesTotal.WithLabelValues("invalid_type")))
}

func TestValidateJSON_FailFast(t *testing.T) {
	handler := middleware.ValidateJSON(userSchema(), middleware.Options{FailFast: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{"name":1,"age":"x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload struct {
		Issues []gojson.RawMessage `json:"issues"`
	}
	require.NoError(t, gojson.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Issues, 1)
}
