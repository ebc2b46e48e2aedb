package episode

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mirkojp/mandalorian-rental/model"
	es "github.com/mirkojp/mandalorian-rental/service/episode"
)

type svcMock struct {
	listFn    func(ctx context.Context) ([]model.Episode, error)
	detailFn  func(ctx context.Context, id int64) (*model.Episode, error)
	reserveFn func(ctx context.Context, id int64) (string, error)
	confirmFn func(ctx context.Context, id int64) (string, error)
}

var _ es.Service = (*svcMock)(nil)

func (m *svcMock) List(ctx context.Context) ([]model.Episode, error) { return m.listFn(ctx) }
func (m *svcMock) Detail(ctx context.Context, id int64) (*model.Episode, error) {
	return m.detailFn(ctx, id)
}
func (m *svcMock) Reserve(ctx context.Context, id int64) (string, error) {
	return m.reserveFn(ctx, id)
}
func (m *svcMock) Confirm(ctx context.Context, id int64) (string, error) {
	return m.confirmFn(ctx, id)
}

// codedErr mirrors the service error shape for handler mapping tests.
type codedErr struct{ c es.ErrCode }

func (e codedErr) Error() string    { return string(e.c) }
func (e codedErr) Code() es.ErrCode { return e.c }

func newController(svc es.Service) *Controller {
	return &Controller{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doRequest(t *testing.T, method, target, paramID string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	require.NoError(t, h(c))
	return rec
}

func TestList_OK(t *testing.T) {
	until := int64(1741003260000)
	h := newController(&svcMock{
		listFn: func(ctx context.Context) ([]model.Episode, error) {
			return []model.Episode{
				{ID: 1, Title: "Chapter 1: The Mandalorian", Status: model.StatusAvailable, Image: "/images/cap1.jpg"},
				{ID: 2, Title: "Chapter 2: The Child", Status: model.StatusReserved, ReservedUntil: &until, Image: "/images/cap2.jpg"},
			}, nil
		},
	})

	rec := doRequest(t, http.MethodGet, "/api/episodes", "", h.List)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	require.Equal(t, "disponible", body[0]["status"])
	require.Nil(t, body[0]["reservedUntil"], "unset deadline must serialize as null")
	require.EqualValues(t, until, body[1]["reservedUntil"])
}

func TestList_EmptyStoreIsEmptyArray(t *testing.T) {
	h := newController(&svcMock{
		listFn: func(ctx context.Context) ([]model.Episode, error) { return nil, nil },
	})
	rec := doRequest(t, http.MethodGet, "/api/episodes", "", h.List)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestList_StoreError(t *testing.T) {
	h := newController(&svcMock{
		listFn: func(ctx context.Context) ([]model.Episode, error) { return nil, errors.New("redis down") },
	})
	rec := doRequest(t, http.MethodGet, "/api/episodes", "", h.List)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Error interno del servidor"}`, rec.Body.String(),
		"store detail must not leak to clients")
}

func TestDetail_NotFound(t *testing.T) {
	h := newController(&svcMock{
		detailFn: func(ctx context.Context, id int64) (*model.Episode, error) {
			return nil, codedErr{es.ErrNotFound}
		},
	})
	rec := doRequest(t, http.MethodGet, "/api/episodes/999", "999", h.Detail)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Capítulo no encontrado"}`, rec.Body.String())
}

func TestDetail_MalformedID(t *testing.T) {
	h := newController(&svcMock{
		detailFn: func(ctx context.Context, id int64) (*model.Episode, error) {
			t.Fatal("service must not be called for malformed id")
			return nil, nil
		},
	})
	rec := doRequest(t, http.MethodGet, "/api/episodes/abc", "abc", h.Detail)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReserve_OK(t *testing.T) {
	h := newController(&svcMock{
		reserveFn: func(ctx context.Context, id int64) (string, error) {
			return "Capítulo 1 reservado por 1 minuto", nil
		},
	})
	rec := doRequest(t, http.MethodPost, "/api/reserve/1", "1", h.Reserve)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Capítulo 1 reservado por 1 minuto"}`, rec.Body.String())
}

func TestReserve_NotAvailable(t *testing.T) {
	h := newController(&svcMock{
		reserveFn: func(ctx context.Context, id int64) (string, error) {
			return "", codedErr{es.ErrNotAvailable}
		},
	})
	rec := doRequest(t, http.MethodPost, "/api/reserve/1", "1", h.Reserve)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Capítulo no disponible"}`, rec.Body.String())
}

func TestReserve_UnknownID(t *testing.T) {
	h := newController(&svcMock{
		reserveFn: func(ctx context.Context, id int64) (string, error) {
			return "", codedErr{es.ErrNotFound}
		},
	})
	rec := doRequest(t, http.MethodPost, "/api/reserve/999", "999", h.Reserve)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirm_NotReserved(t *testing.T) {
	h := newController(&svcMock{
		confirmFn: func(ctx context.Context, id int64) (string, error) {
			return "", codedErr{es.ErrNotReserved}
		},
	})
	rec := doRequest(t, http.MethodPost, "/api/confirm/1", "1", h.Confirm)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"El capítulo no está reservado"}`, rec.Body.String())
}

func TestConfirm_OK(t *testing.T) {
	h := newController(&svcMock{
		confirmFn: func(ctx context.Context, id int64) (string, error) {
			return "Pago confirmado para el capítulo 1 por $4.99. Alquilado por 1 minuto.", nil
		},
	})
	rec := doRequest(t, http.MethodPost, "/api/confirm/1", "1", h.Confirm)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["message"], "$4.99")
}
