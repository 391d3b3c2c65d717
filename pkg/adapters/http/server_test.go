package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/internal/logging"
	algebrahttp "github.com/aretw0/algebra/pkg/adapters/http"
	"github.com/aretw0/algebra/pkg/observability"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...algebrahttp.Option) *httptest.Server {
	t.Helper()
	opts = append([]algebrahttp.Option{algebrahttp.WithLogger(logging.NewNop())}, opts...)
	srv := httptest.NewServer(algebrahttp.NewHandler(algebra.New(), opts...))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/reduce", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestReduce(t *testing.T) {
	srv := newServer(t)

	resp, data := post(t, srv, `{"expression": {"tag": "Multiplication", "children": [2, {"tag": "Addition", "children": ["x", "y"]}]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out algebrahttp.ReduceResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Addition(Multiplication(2, x), Multiplication(2, y))", out.Text)
	assert.Equal(t, "Addition", out.Result.Tag)
	assert.Len(t, out.Result.Children, 2)
}

func TestReduce_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Malformed JSON", `{"expression": `, http.StatusBadRequest},
		{"Not an object", `["x"]`, http.StatusBadRequest},
		{"Missing expression", `{"expr": "x"}`, http.StatusBadRequest},
		{"Unknown tag", `{"expression": {"tag": "Sine", "children": ["x"]}}`, http.StatusBadRequest},
		{"Wrong arity", `{"expression": {"tag": "Division", "children": ["x"]}}`, http.StatusBadRequest},
	}

	srv := newServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, srv, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var out algebrahttp.ErrorResponse
			require.NoError(t, json.Unmarshal(data, &out))
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestReduce_BodyLimit(t *testing.T) {
	srv := newServer(t, algebrahttp.WithMaxBodyBytes(16))
	resp, _ := post(t, srv, `{"expression": "a_rather_long_symbol_name"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestGetRules(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/rules")
	require.NoError(t, err)
	defer resp.Body.Close()

	var rules []registry.Description
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rules))
	require.NotEmpty(t, rules)
	assert.Equal(t, "Algebra.negativeOfNegative", rules[0].Name)
}

func TestHealthAndInfo(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, strings.TrimSpace(algebra.Version), info["version"])
	assert.EqualValues(t, 34, info["precision"])
	assert.Equal(t, "numeric", info["mode"])
}

func TestInfo_ReflectsEngineSettings(t *testing.T) {
	eng := algebra.New(algebra.WithPrecision(12), algebra.WithMode(algebra.ModeSymbolic))
	srv := httptest.NewServer(algebrahttp.NewHandler(eng, algebrahttp.WithLogger(logging.NewNop())))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.EqualValues(t, 12, info["precision"])
	assert.Equal(t, "symbolic", info["mode"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	eng := algebra.New(algebra.WithLifecycleHooks(m.Hooks()))
	srv := httptest.NewServer(algebrahttp.NewHandler(eng,
		algebrahttp.WithLogger(slog.New(slog.DiscardHandler)),
		algebrahttp.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/reduce", "application/json", bytes.NewBufferString(`{"expression": {"tag": "Division", "children": ["x", 0]}}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `algebra_rules_applied_total{rule="Algebra.divisionZeroOne",tag="Division"} 1`)
}

func TestCORS(t *testing.T) {
	srv := newServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/reduce", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
