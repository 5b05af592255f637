// Package api serves batch conversions over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/hsnony97-cyber/Load-Ext/internal/batch"
	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/internal/jobstore"
	"github.com/hsnony97-cyber/Load-Ext/internal/logger"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// Store records batches and reads them back.
type Store interface {
	batch.Recorder
	Get(ctx context.Context, id string) (jobstore.Batch, error)
	List(ctx context.Context, limit int) ([]jobstore.Batch, error)
}

// Runner runs one batch. batch.Run is the default.
type Runner func(ctx context.Context, opts batch.Options, hooks batch.Hooks) (batch.Report, error)

type Server struct {
	ctx   context.Context
	store Store
	run   Runner
	wg    sync.WaitGroup
}

// NewServer returns a server whose batches run under ctx. Cancelling ctx
// stops scheduling new files in every running batch.
func NewServer(ctx context.Context, store Store) *Server {
	return &Server{ctx: ctx, store: store, run: batch.Run}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/batches", s.handleCreateBatch)
	e.GET("/v1/batches", s.handleListBatches)
	e.GET("/v1/batches/:id", s.handleGetBatch)
	e.GET("/v1/layouts", s.handleListLayouts)
}

// Wait blocks until every batch started by the server has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

// started hides StartBatch from the batch driver once the handler has
// recorded it.
type started struct{ Store }

func (started) StartBatch(context.Context, string, batch.Options) error { return nil }

func (s *Server) handleCreateBatch(c *echo.Context) error {
	req, err := decodeJSON[CreateBatchRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := validateCreate(&req); err != nil {
		return writeInvalid(c, err)
	}
	inputs, err := batch.Collect(req.Inputs)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(inputs) == 0 {
		return writeBadRequest(c, "inputs contain no model dumps")
	}

	opts := batch.Options{
		ID:        uuid.NewString(),
		Inputs:    inputs,
		OutputDir: req.OutputDir,
		Format:    req.Format,
		Workers:   req.Workers,
		DryRun:    req.DryRun,
		Recorder:  started{s.store},
	}
	if err := s.store.StartBatch(c.Request().Context(), opts.ID, opts); err != nil {
		return writeStoreError(c, err)
	}

	log := logger.FromContext(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		report, err := s.run(s.ctx, opts, batch.Hooks{})
		if err == nil {
			return
		}
		log.Warn("batch finished with errors", "batch", opts.ID, "error", err)
		if len(report.Files) == 0 {
			// The driver never got to record an outcome.
			if ferr := s.store.FinishBatch(context.WithoutCancel(s.ctx), opts.ID, batch.BatchFailed); ferr != nil {
				log.Error("record batch status failed", "batch", opts.ID, "error", ferr)
			}
		}
	}()

	return c.JSON(http.StatusAccepted, CreateBatchResponse{
		ID:     opts.ID,
		Object: "batch",
		Status: batch.BatchRunning,
		Inputs: inputs,
	})
}

func validateCreate(req *CreateBatchRequest) error {
	if len(req.Inputs) == 0 {
		return newInvalidRequest("inputs", "is required")
	}
	if req.Workers < 0 {
		return newInvalidRequest("workers", "must be >= 0")
	}
	if req.Format == "" {
		req.Format = batch.DefaultFormat
	}
	if _, err := container.Lookup(req.Format); err != nil {
		return newInvalidRequest("format", err.Error())
	}
	return nil
}

func (s *Server) handleGetBatch(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return writeNotFound(c, id)
	}
	b, err := s.store.Get(c.Request().Context(), id)
	if errors.Is(err, jobstore.ErrNotFound) {
		return writeNotFound(c, id)
	}
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, BatchResponse{Object: "batch", Batch: b})
}

func (s *Server) handleListBatches(c *echo.Context) error {
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return writeBadRequest(c, "limit must be a positive integer")
		}
		limit = n
	}
	batches, err := s.store.List(c.Request().Context(), limit)
	if err != nil {
		return writeStoreError(c, err)
	}
	if batches == nil {
		batches = []jobstore.Batch{}
	}
	return c.JSON(http.StatusOK, BatchList{Object: "list", Data: batches})
}

func (s *Server) handleListLayouts(c *echo.Context) error {
	layouts := nh5.Layouts()
	out := make([]LayoutInfo, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, LayoutInfo{
			Name:    l.Name,
			Version: l.Version,
			Size:    l.Size(),
			Fields:  l.Names(),
			Descr:   l.Descr(),
		})
	}
	return c.JSON(http.StatusOK, LayoutList{Object: "list", Data: out})
}
