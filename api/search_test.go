package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/hillclimb/api"
	"github.com/katalvlaran/hillclimb/climb"
)

const sample = "Sabqponm\nabcryxxl\naccszExk\nacctuvwj\nabdefghi\n"

// SearchAPISuite drives the HTTP surface through an in-memory engine.
type SearchAPISuite struct {
	suite.Suite
	engine *gin.Engine
}

func TestSearchAPISuite(t *testing.T) {
	suite.Run(t, new(SearchAPISuite))
}

func (s *SearchAPISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *SearchAPISuite) SetupTest() {
	s.engine = newEngine(climb.StrategyReverse, 100)
}

func newEngine(strategy climb.Strategy, maxCells int) *gin.Engine {
	return newEngineWithTimeout(strategy, maxCells, time.Second)
}

func newEngineWithTimeout(strategy climb.Strategy, maxCells int, timeout time.Duration) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := api.NewSearchController(api.SearchConfig{
		Strategy: strategy,
		Workers:  2,
		Timeout:  timeout,
		MaxCells: maxCells,
		Logger:   logger,
	})
	return api.NewRouter(api.Config{
		BaseURL:     "/api",
		Controllers: []api.Controller{ctrl},
		Logger:      logger,
	}).Engine()
}

func (s *SearchAPISuite) post(body any, header http.Header) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *SearchAPISuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

// TestBoth returns both answers for the sample.
func (s *SearchAPISuite) TestBoth() {
	rec := s.post(api.SearchRequest{Heightmap: sample}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp api.SearchResponse
	s.decode(rec, &resp)
	s.Equal(8, resp.Width)
	s.Equal(5, resp.Height)
	s.Equal(api.PositionDTO{X: 5, Y: 2}, resp.Goal)

	s.Require().NotNil(resp.Single)
	s.True(resp.Single.Reachable)
	s.Require().NotNil(resp.Single.Distance)
	s.Equal(31, *resp.Single.Distance)
	s.Empty(resp.Single.Path)

	s.Require().NotNil(resp.Multi)
	s.True(resp.Multi.Reachable)
	s.Require().NotNil(resp.Multi.Distance)
	s.Equal(29, *resp.Multi.Distance)
	s.NotNil(resp.Multi.Start)
	s.Equal("reverse", resp.Multi.Strategy)

	_, err := uuid.Parse(resp.RequestID)
	s.NoError(err)
	s.Equal(resp.RequestID, rec.Header().Get(api.RequestIDHeader))
}

// TestSingleWithPath returns the route and omits the multi-source block.
func (s *SearchAPISuite) TestSingleWithPath() {
	rec := s.post(api.SearchRequest{Heightmap: sample, Mode: api.ModeSingle, Path: true}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp api.SearchResponse
	s.decode(rec, &resp)
	s.Nil(resp.Multi)
	s.Require().NotNil(resp.Single)
	s.Len(resp.Single.Path, 32)
	s.Equal(resp.Start, resp.Single.Path[0])
	s.Equal(resp.Goal, resp.Single.Path[31])
}

// TestUnreachable reports null distances rather than an error.
func (s *SearchAPISuite) TestUnreachable() {
	rec := s.post(api.SearchRequest{Heightmap: "Sbz\nbzE\n"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var raw struct {
		Single map[string]any `json:"single"`
		Multi  map[string]any `json:"multi"`
	}
	s.decode(rec, &raw)
	s.Equal(false, raw.Single["reachable"])
	s.Contains(raw.Single, "distance")
	s.Nil(raw.Single["distance"])
	s.Equal(false, raw.Multi["reachable"])
	s.Nil(raw.Multi["distance"])
	s.Nil(raw.Multi["start"])
}

// TestRequestIDPropagation echoes a valid incoming id.
func (s *SearchAPISuite) TestRequestIDPropagation() {
	id := uuid.New().String()
	rec := s.post(api.SearchRequest{Heightmap: sample, Mode: api.ModeSingle},
		http.Header{api.RequestIDHeader: []string{id}})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(id, rec.Header().Get(api.RequestIDHeader))
}

// TestRequestIDPropagationMixedCase accepts the header regardless of spelling.
func (s *SearchAPISuite) TestRequestIDPropagationMixedCase() {
	id := uuid.New().String()
	rec := s.post(api.SearchRequest{Heightmap: sample, Mode: api.ModeSingle},
		http.Header{"x-request-id": []string{id}})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(id, rec.Header().Get(api.RequestIDHeader))
}

// TestInvalidRequestIDReplaced mints a fresh id for a non-UUID header.
func (s *SearchAPISuite) TestInvalidRequestIDReplaced() {
	rec := s.post(api.SearchRequest{Heightmap: sample, Mode: api.ModeSingle},
		http.Header{api.RequestIDHeader: []string{"not-a-uuid"}})
	s.Require().Equal(http.StatusOK, rec.Code)
	got := rec.Header().Get(api.RequestIDHeader)
	s.NotEqual("not-a-uuid", got)
	_, err := uuid.Parse(got)
	s.NoError(err)
}

// TestSearchDeadline maps an expired search deadline to 504.
func (s *SearchAPISuite) TestSearchDeadline() {
	s.engine = newEngineWithTimeout(climb.StrategyReverse, 100, time.Nanosecond)
	rec := s.post(api.SearchRequest{Heightmap: sample}, nil)
	s.Equal(http.StatusGatewayTimeout, rec.Code, rec.Body.String())

	var resp api.ErrorResponse
	s.decode(rec, &resp)
	s.Contains(resp.Error, context.DeadlineExceeded.Error())
}

// TestClientGone maps a canceled request context to 503.
func (s *SearchAPISuite) TestClientGone() {
	raw, err := json.Marshal(api.SearchRequest{Heightmap: sample})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(raw)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	s.Equal(http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

// TestBadRequests covers malformed input.
func (s *SearchAPISuite) TestBadRequests() {
	cases := []struct {
		name string
		body any
		want int
	}{
		{"MissingHeightmap", map[string]string{"mode": "both"}, http.StatusBadRequest},
		{"UnknownMode", api.SearchRequest{Heightmap: sample, Mode: "sideways"}, http.StatusBadRequest},
		{"NoGoal", api.SearchRequest{Heightmap: "Sab\nabc\n"}, http.StatusBadRequest},
		{"BadSymbol", api.SearchRequest{Heightmap: "S#E\n"}, http.StatusBadRequest},
		{"TooLarge", api.SearchRequest{Heightmap: strings.Repeat("a", 200) + "\n" + "S" + strings.Repeat("a", 198) + "E\n"}, http.StatusRequestEntityTooLarge},
		{"BodyTooLarge", api.SearchRequest{Heightmap: "S" + strings.Repeat("a", 6000) + "E\n"}, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.post(tc.body, nil)
			s.Equal(tc.want, rec.Code, rec.Body.String())

			var resp api.ErrorResponse
			s.decode(rec, &resp)
			s.NotEmpty(resp.Error)
			s.NotEmpty(resp.RequestID)
		})
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := newEngine(climb.StrategyPerCandidate, 0)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	// run one search so the climb metrics have samples
	body := `{"heightmap":"` + strings.ReplaceAll(sample, "\n", `\n`) + `"}`
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"strategy":"per-candidate"`)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "hillclimb_searches_total")
}
