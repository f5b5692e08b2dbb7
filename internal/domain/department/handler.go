package department

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/crud"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireAuth())
	read.GET("/departments", h.List)
	read.GET("/departments/:id", h.Get)

	write := api.Group("", auth.RequireRole("admin", "staff"))
	write.POST("/departments", h.Create)
	write.PUT("/departments/:id", h.Update)
	write.DELETE("/departments/:id", h.Delete)
}

// departmentRequest keeps is_active optional on writes; a department that
// omits the flag is active.
type departmentRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Floor        *string `json:"floor"`
	HeadDoctorID *int64  `json:"head_doctor_id"`
	IsActive     *bool   `json:"is_active"`
}

func (r departmentRequest) model() *Department {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &Department{
		Name:         r.Name,
		Description:  r.Description,
		Floor:        r.Floor,
		HeadDoctorID: r.HeadDoctorID,
		IsActive:     active,
	}
}

func (h *Handler) Create(c echo.Context) error {
	var req departmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.Create(c.Request().Context(), req.model())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, crud.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "department not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid active")
		}
		items, total, err := h.svc.ListActive(c.Request().Context(), active, pg.Limit, pg.Offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req departmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.Update(c.Request().Context(), id, req.model())
	if errors.Is(err, crud.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "department not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "department not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
