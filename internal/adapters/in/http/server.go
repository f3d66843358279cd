package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	UtilizationReader interface {
		Handle(ctx context.Context, query queries.GetStorageUtilizationQuery) (storage.Utilization, error)
	}

	LocationPathReader interface {
		Handle(ctx context.Context, query queries.GetLocationPathQuery) (queries.GetLocationPathQueryResponse, error)
	}

	UrgentItemsReader interface {
		Handle(ctx context.Context, query queries.GetUrgentItemsQuery) ([]queries.GetUrgentItemsQueryResponse, error)
	}
)

// Server exposes the operational read surface: health, Prometheus metrics
// and warehouse views.
type Server struct {
	utilization UtilizationReader
	paths       LocationPathReader
	urgent      UrgentItemsReader
	clock       func() time.Time
}

func NewServer(
	utilization UtilizationReader,
	paths LocationPathReader,
	urgent UrgentItemsReader,
	clock func() time.Time,
) *Server {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Server{utilization: utilization, paths: paths, urgent: urgent, clock: clock}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/storage/utilization", s.GetStorageUtilization)
	api.GET("/storage/locations/:id/path", s.GetLocationPath)
	api.GET("/items/urgent", s.GetUrgentItems)
}

// GetStorageUtilization handles GET /api/v1/storage/utilization?root_id=.
// Without root_id every leaf location is summed.
func (s *Server) GetStorageUtilization(c echo.Context) error {
	var rootID *kernel.UUID
	if raw := c.QueryParam("root_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return respondError(c, errs.NewValueIsInvalidErrorWithCause("root_id", err))
		}
		rootID = &id
	}

	query, err := queries.NewGetStorageUtilizationQuery(rootID)
	if err != nil {
		return respondError(c, err)
	}

	u, err := s.utilization.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, Utilization{
		Locations:      u.Locations,
		ItemCount:      u.ItemCount,
		CurrentWeight:  u.CurrentWeight.String(),
		CurrentVolume:  u.CurrentVolume.String(),
		MaxWeight:      u.MaxWeight.String(),
		MaxVolume:      u.MaxVolume.String(),
		WeightPercent:  u.WeightPercent.StringFixed(2),
		VolumePercent:  u.VolumePercent.StringFixed(2),
		AvailableCount: u.AvailableCount,
	})
}

// GetLocationPath handles GET /api/v1/storage/locations/:id/path.
func (s *Server) GetLocationPath(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetLocationPathQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	path, err := s.paths.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LocationPath{
		LocationID: path.LocationID.String(),
		Code:       path.Code,
		Path:       path.Path,
		Codes:      path.Codes,
	})
}

// GetUrgentItems handles GET /api/v1/items/urgent.
func (s *Server) GetUrgentItems(c echo.Context) error {
	items, err := s.urgent.Handle(c.Request().Context(), queries.NewGetUrgentItemsQuery(s.clock()))
	if err != nil {
		return respondError(c, err)
	}

	response := make([]UrgentItem, len(items))
	for i, item := range items {
		response[i] = UrgentItem{
			RecordID:             item.RecordID.String(),
			OrderID:              item.OrderID.String(),
			LocationCode:         item.LocationCode,
			Status:               item.Status.String(),
			AlertReason:          item.AlertReason,
			PlannedMoveAt:        item.PlannedMoveAt,
			Overdue:              item.Overdue,
			StorageDurationHours: item.StorageDurationHours,
		}
	}
	return c.JSON(http.StatusOK, response)
}

func respondError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errs.IsValidation(err):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrConcurrencyConflict):
		code, message = http.StatusConflict, err.Error()
	default:
		c.Logger().Error(err)
	}

	return c.JSON(code, Error{Code: code, Message: message})
}
