package episoderepo

import (
	"fmt"
	"strconv"

	"github.com/mirkojp/mandalorian-rental/model"
)

// One hash per episode. Every field is stored as a string; timestamps are
// epoch milliseconds and the empty string means unset.

func encodeRecord(ep model.Episode) map[string]interface{} {
	return map[string]interface{}{
		"id":            strconv.FormatInt(ep.ID, 10),
		"title":         ep.Title,
		"status":        string(ep.Status),
		"reservedUntil": encodeMillis(ep.ReservedUntil),
		"rentedUntil":   encodeMillis(ep.RentedUntil),
		"image":         ep.Image,
	}
}

func decodeRecord(rec map[string]string) (model.Episode, error) {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return model.Episode{}, fmt.Errorf("bad episode id %q: %w", rec["id"], err)
	}
	reserved, err := decodeMillis(rec["reservedUntil"])
	if err != nil {
		return model.Episode{}, fmt.Errorf("episode %d reservedUntil: %w", id, err)
	}
	rented, err := decodeMillis(rec["rentedUntil"])
	if err != nil {
		return model.Episode{}, fmt.Errorf("episode %d rentedUntil: %w", id, err)
	}
	return model.Episode{
		ID:            id,
		Title:         rec["title"],
		Status:        model.EpisodeStatus(rec["status"]),
		ReservedUntil: reserved,
		RentedUntil:   rented,
		Image:         rec["image"],
	}, nil
}

func encodeMillis(ts *int64) string {
	if ts == nil {
		return ""
	}
	return strconv.FormatInt(*ts, 10)
}

func decodeMillis(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &ms, nil
}
