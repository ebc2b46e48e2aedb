// model/episode.go
package model

type EpisodeStatus string

const (
	StatusAvailable EpisodeStatus = "disponible"
	StatusReserved  EpisodeStatus = "reservado"
	StatusRented    EpisodeStatus = "alquilado"
)

// Episode is a catalog item. Timestamps are absolute deadlines in epoch
// milliseconds; nil means the episode is not in the matching state.
type Episode struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Status        EpisodeStatus `json:"status"`
	ReservedUntil *int64        `json:"reservedUntil"`
	RentedUntil   *int64        `json:"rentedUntil"`
	Image         string        `json:"image"`
}
