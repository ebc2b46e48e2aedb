package episode

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mirkojp/mandalorian-rental/model"
	es "github.com/mirkojp/mandalorian-rental/service/episode"
)

type Controller struct {
	Svc es.Service
	V   *validator.Validate
	Log *slog.Logger
}

const (
	msgNotFound     = "Capítulo no encontrado"
	msgNotAvailable = "Capítulo no disponible"
	msgNotReserved  = "El capítulo no está reservado"
	msgInternal     = "Error interno del servidor"
)

// GET /api/episodes
func (h *Controller) List(c echo.Context) error {
	eps, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("episode list", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResp{Error: msgInternal})
	}
	if eps == nil {
		eps = []model.Episode{}
	}
	return c.JSON(http.StatusOK, eps)
}

// GET /api/episodes/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := h.episodeID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
	}
	ep, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if es.Code(err) == es.ErrNotFound {
			return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
		}
		h.Log.Error("episode detail", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResp{Error: msgInternal})
	}
	return c.JSON(http.StatusOK, ep)
}

// POST /api/reserve/:id
func (h *Controller) Reserve(c echo.Context) error {
	id, ok := h.episodeID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
	}
	msg, err := h.Svc.Reserve(c.Request().Context(), id)
	if err != nil {
		switch es.Code(err) {
		case es.ErrNotFound:
			return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
		case es.ErrNotAvailable:
			return c.JSON(http.StatusBadRequest, ErrorResp{Error: msgNotAvailable})
		default:
			h.Log.Error("episode reserve", "id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, ErrorResp{Error: msgInternal})
		}
	}
	return c.JSON(http.StatusOK, MessageResp{Message: msg})
}

// POST /api/confirm/:id
func (h *Controller) Confirm(c echo.Context) error {
	id, ok := h.episodeID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
	}
	msg, err := h.Svc.Confirm(c.Request().Context(), id)
	if err != nil {
		switch es.Code(err) {
		case es.ErrNotFound:
			return c.JSON(http.StatusNotFound, ErrorResp{Error: msgNotFound})
		case es.ErrNotReserved:
			return c.JSON(http.StatusBadRequest, ErrorResp{Error: msgNotReserved})
		default:
			h.Log.Error("episode confirm", "id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, ErrorResp{Error: msgInternal})
		}
	}
	return c.JSON(http.StatusOK, MessageResp{Message: msg})
}

// episodeID parses the :id param. A malformed or non-positive id can never
// match a seeded episode, so callers answer 404 rather than 400.
func (h *Controller) episodeID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	if err := h.V.Var(id, "gt=0"); err != nil {
		return 0, false
	}
	return id, true
}
