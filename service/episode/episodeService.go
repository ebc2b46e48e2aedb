package episodesvc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mirkojp/mandalorian-rental/model"
	episoderepo "github.com/mirkojp/mandalorian-rental/repository/episode"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrNotAvailable ErrCode = "NOT_AVAILABLE"
	ErrNotReserved  ErrCode = "NOT_RESERVED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Fields = episoderepo.Fields

type Repo interface {
	GetAll(ctx context.Context) ([]model.Episode, error)
	GetOne(ctx context.Context, id int64) (*model.Episode, error)
	UpdateFields(ctx context.Context, id int64, f Fields) error
	UpdateFieldsIfStatus(ctx context.Context, id int64, expect model.EpisodeStatus, f Fields) (bool, error)
}

type Service interface {
	// List sweeps expired reservations and rentals, then returns the full
	// catalog ordered by id.
	List(ctx context.Context) ([]model.Episode, error)

	// Detail returns a single episode as stored. It does not sweep, so an
	// expired reservation may still read as reserved until the next List.
	Detail(ctx context.Context, id int64) (*model.Episode, error)

	// Reserve moves an available episode to reserved for the reserve window.
	Reserve(ctx context.Context, id int64) (string, error)

	// Confirm moves a reserved episode to rented for the rent window. The
	// payment itself is a fixed-price no-op.
	Confirm(ctx context.Context, id int64) (string, error)
}

type Config struct {
	ReserveTTL time.Duration
	RentTTL    time.Duration
	Price      float64
	Now        func() time.Time // defaults to time.Now
}

type service struct {
	r   Repo
	cfg Config
}

func New(r Repo, cfg Config) Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{r: r, cfg: cfg}
}

func (s *service) List(ctx context.Context) ([]model.Episode, error) {
	eps, err := s.r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	swept, ops := Sweep(s.cfg.Now(), eps)

	// Attempt every pending write even if one fails; the returned view is
	// already post-sweep either way.
	var errs []error
	for _, op := range ops {
		if err := s.r.UpdateFields(ctx, op.ID, op.Fields); err != nil && !errors.Is(err, episoderepo.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return swept, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Episode, error) {
	ep, err := s.r.GetOne(ctx, id)
	if errors.Is(err, episoderepo.ErrNotFound) {
		return nil, makeErr(ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ep, nil
}

func (s *service) Reserve(ctx context.Context, id int64) (string, error) {
	ep, err := s.r.GetOne(ctx, id)
	if errors.Is(err, episoderepo.ErrNotFound) {
		return "", makeErr(ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if ep.Status != model.StatusAvailable {
		return "", makeErr(ErrNotAvailable)
	}

	until := s.cfg.Now().Add(s.cfg.ReserveTTL).UnixMilli()
	ok, err := s.r.UpdateFieldsIfStatus(ctx, id, model.StatusAvailable, Fields{
		"status":        string(model.StatusReserved),
		"reservedUntil": strconv.FormatInt(until, 10),
	})
	if errors.Is(err, episoderepo.ErrNotFound) {
		return "", makeErr(ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		// lost the guard to a concurrent writer
		return "", makeErr(ErrNotAvailable)
	}

	return fmt.Sprintf("Capítulo %d reservado por %s", id, windowText(s.cfg.ReserveTTL)), nil
}

func (s *service) Confirm(ctx context.Context, id int64) (string, error) {
	ep, err := s.r.GetOne(ctx, id)
	if errors.Is(err, episoderepo.ErrNotFound) {
		return "", makeErr(ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if ep.Status != model.StatusReserved {
		return "", makeErr(ErrNotReserved)
	}

	until := s.cfg.Now().Add(s.cfg.RentTTL).UnixMilli()
	ok, err := s.r.UpdateFieldsIfStatus(ctx, id, model.StatusReserved, Fields{
		"status":        string(model.StatusRented),
		"reservedUntil": "",
		"rentedUntil":   strconv.FormatInt(until, 10),
	})
	if errors.Is(err, episoderepo.ErrNotFound) {
		return "", makeErr(ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", makeErr(ErrNotReserved)
	}

	return fmt.Sprintf("Pago confirmado para el capítulo %d por $%.2f. Alquilado por %s.",
		id, s.cfg.Price, windowText(s.cfg.RentTTL)), nil
}

func windowText(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minuto"
		}
		return fmt.Sprintf("%d minutos", m)
	}
	s := int(d / time.Second)
	if s == 1 {
		return "1 segundo"
	}
	return fmt.Sprintf("%d segundos", s)
}
