// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search pipeline over HTTP as JSON, so web
// front ends stay thin renderers of the Row sequence. The server owns no
// scoring or fetching logic of its own.
package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/portal"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// maxRows bounds the rows returned per request; the full sorted set stays
// a core-contract concern, truncation is ours.
const maxRows = 50

// Server wires the pipeline behind an echo instance.
type Server struct {
	fetcher pipeline.Fetcher
	log     zerolog.Logger
	echo    *echo.Echo
}

// New builds the HTTP API around a fetcher.
func New(f pipeline.Fetcher, log zerolog.Logger) *Server {
	s := &Server{fetcher: f, log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(requestLogger(log))

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/search", s.handleSearch)
	e.GET("/api/search/uk", s.handleSearchUK)
	e.GET("/api/portals", s.handlePortals)

	s.echo = e
	return s
}

// Start blocks serving on addr until the listener fails or is closed.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("http api listening")
	return s.echo.Start(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch runs the full pipeline for the query parameters and
// returns the scored rows plus the aggregate counters.
func (s *Server) handleSearch(c echo.Context) error {
	intake := intakeFromQuery(c)
	res := pipeline.FetchFiltered(c.Request().Context(), s.fetcher, intake, s.log)
	return c.JSON(http.StatusOK, truncated(res))
}

func (s *Server) handleSearchUK(c echo.Context) error {
	intake := intakeFromQuery(c)
	res := pipeline.FetchUK(c.Request().Context(), s.fetcher, intake, s.log)
	return c.JSON(http.StatusOK, truncated(res))
}

// handlePortals returns the portal shortcut URLs for a diagnosis/keyword
// pair.
func (s *Server) handlePortals(c echo.Context) error {
	q := portal.Query(c.QueryParam("diagnosis"), c.QueryParam("keywords"))
	return c.JSON(http.StatusOK, map[string]string{
		"nihr":   portal.NIHRURL(q, c.QueryParam("location")),
		"isrctn": portal.ISRCTNURL(q),
		"cruk":   portal.CRUKURL(q),
	})
}

// intakeFromQuery builds an Intake from request query parameters.
// Out-of-range values are a presentation concern; the core scores whatever
// it is given.
func intakeFromQuery(c echo.Context) types.Intake {
	intake := types.Intake{
		Diagnosis:        c.QueryParam("diagnosis"),
		Setting:          types.Setting(c.QueryParam("setting")),
		Keywords:         c.QueryParam("keywords"),
		Country:          c.QueryParam("country"),
		PriorBevacizumab: boolParam(c, "prior_bev"),
		RequireCountry:   boolParam(c, "require_country"),
		IncludeContacts:  boolParam(c, "contacts"),
	}
	if v, err := strconv.Atoi(c.QueryParam("age")); err == nil {
		intake.Age = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("kps")); err == nil {
		intake.KPS = &v
	}
	return intake
}

func boolParam(c echo.Context, name string) bool {
	switch strings.ToLower(c.QueryParam(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func truncated(res pipeline.Result) pipeline.Result {
	if len(res.Rows) > maxRows {
		res.Rows = res.Rows[:maxRows]
	}
	return res
}

// requestLogger logs one line per request with method, path, status, and
// latency.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
