package episodesvc

import (
	"time"

	"github.com/mirkojp/mandalorian-rental/model"
	episoderepo "github.com/mirkojp/mandalorian-rental/repository/episode"
)

// PersistOp is a store write pending after a sweep.
type PersistOp struct {
	ID     int64
	Fields episoderepo.Fields
}

// Sweep reverts every episode whose deadline has passed back to available.
// Pure function: it takes the clock value and the current records and
// returns the post-sweep view plus the writes needed to persist it, so it
// can be tested without a store or a real clock.
func Sweep(now time.Time, episodes []model.Episode) ([]model.Episode, []PersistOp) {
	nowMs := now.UnixMilli()
	var ops []PersistOp

	for i := range episodes {
		ep := &episodes[i]
		switch {
		case ep.Status == model.StatusReserved && ep.ReservedUntil != nil && nowMs >= *ep.ReservedUntil:
			ep.Status = model.StatusAvailable
			ep.ReservedUntil = nil
			ops = append(ops, PersistOp{ID: ep.ID, Fields: episoderepo.Fields{
				"status":        string(model.StatusAvailable),
				"reservedUntil": "",
			}})
		case ep.Status == model.StatusRented && ep.RentedUntil != nil && nowMs >= *ep.RentedUntil:
			ep.Status = model.StatusAvailable
			ep.RentedUntil = nil
			ops = append(ops, PersistOp{ID: ep.ID, Fields: episoderepo.Fields{
				"status":      string(model.StatusAvailable),
				"rentedUntil": "",
			}})
		}
	}
	return episodes, ops
}
