package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/heightmap"
)

// SearchConfig configures a SearchController.
type SearchConfig struct {
	Strategy climb.Strategy // multi-source strategy
	Workers  int            // per-candidate concurrency
	Timeout  time.Duration  // deadline for one request's searches
	MaxCells int            // largest accepted heightmap
	Logger   *slog.Logger
}

// SearchController serves climb searches.
type SearchController struct {
	strategy climb.Strategy
	workers  int
	timeout  time.Duration
	maxCells int
	logger   *slog.Logger
}

// NewSearchController initializes a SearchController.
func NewSearchController(cfg SearchConfig) *SearchController {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &SearchController{
		strategy: cfg.Strategy,
		workers:  workers,
		timeout:  cfg.Timeout,
		maxCells: cfg.MaxCells,
		logger:   logger,
	}
}

// Register registers the search routes.
func (sc *SearchController) Register(route *gin.RouterGroup) {
	route.GET("/healthz", sc.healthz)
	route.POST("/search", sc.search)
}

func (sc *SearchController) healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// search handles POST /v1/search.
func (sc *SearchController) search(ctx *gin.Context) {
	if sc.maxCells > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBodyBytes(sc.maxCells))
	}
	var request SearchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sc.fail(ctx, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		sc.fail(ctx, http.StatusBadRequest, err)
		return
	}
	mode := request.Mode
	if mode == "" {
		mode = ModeBoth
	}
	if mode != ModeSingle && mode != ModeMulti && mode != ModeBoth {
		sc.fail(ctx, http.StatusBadRequest, fmt.Errorf("unknown mode %q", request.Mode))
		return
	}

	terrain, err := heightmap.ParseString(request.Heightmap)
	if err != nil {
		sc.fail(ctx, http.StatusBadRequest, err)
		return
	}
	if sc.maxCells > 0 && terrain.Grid.Len() > sc.maxCells {
		sc.fail(ctx, http.StatusRequestEntityTooLarge,
			fmt.Errorf("heightmap has %d cells, limit is %d", terrain.Grid.Len(), sc.maxCells))
		return
	}

	searchCtx := ctx.Request.Context()
	if sc.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(searchCtx, sc.timeout)
		defer cancel()
	}
	logger := sc.logger.With(slog.String("request_id", ctx.GetString(requestIDKey)))
	opts := []climb.Option{
		climb.WithContext(searchCtx),
		climb.WithLogger(logger),
		climb.WithStrategy(sc.strategy),
		climb.WithWorkers(sc.workers),
	}

	response := SearchResponse{
		RequestID: ctx.GetString(requestIDKey),
		Width:     terrain.Grid.Width,
		Height:    terrain.Grid.Height,
		Start:     toDTO(terrain.Start),
		Goal:      toDTO(terrain.Goal),
	}

	if mode != ModeMulti {
		singleOpts := opts
		if request.Path {
			singleOpts = append(slices.Clip(opts), climb.WithReturnPath())
		}
		res, err := climb.ShortestPath(terrain.Grid, terrain.Start, terrain.Goal, singleOpts...)
		if err != nil {
			sc.fail(ctx, statusFor(err), err)
			return
		}
		response.Single = singleDTO(res)
	}

	if mode != ModeSingle {
		res, err := climb.Minimize(terrain.Grid, heightmap.AtElevation(0), terrain.Goal, opts...)
		if err != nil {
			sc.fail(ctx, statusFor(err), err)
			return
		}
		response.Multi = multiDTO(res)
	}

	ctx.JSON(http.StatusOK, response)
}

// maxBodyBytes bounds a request whose heightmap has at most cells cells.
// Each cell is one byte, each row break at most two once escaped in JSON,
// and the envelope gets a fixed allowance.
func maxBodyBytes(cells int) int64 {
	return 3*int64(cells) + 4<<10
}

// fail writes an ErrorResponse.
func (sc *SearchController) fail(ctx *gin.Context, status int, err error) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: ctx.GetString(requestIDKey),
		Error:     err.Error(),
	})
}

// statusFor maps search errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, heightmap.ErrOutOfBounds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func singleDTO(res climb.Result) *SingleDTO {
	out := &SingleDTO{Reachable: res.Found, Expanded: res.Expanded}
	if res.Found {
		d := res.Distance
		out.Distance = &d
	}
	for _, p := range res.Path {
		out.Path = append(out.Path, toDTO(p))
	}
	return out
}

func multiDTO(res climb.MultiResult) *MultiDTO {
	out := &MultiDTO{
		Reachable:  res.Found,
		Candidates: res.Candidates,
		Strategy:   res.Strategy.String(),
	}
	if res.Found {
		d := res.Distance
		start := toDTO(res.Start)
		out.Distance = &d
		out.Start = &start
	}
	return out
}
