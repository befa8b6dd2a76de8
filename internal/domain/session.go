package domain

import "slices"

type Format string

const (
	FormatDubbed    Format = "dubbed"
	FormatSubtitled Format = "subtitled"
)

func (f Format) Valid() bool {
	return f == FormatDubbed || f == FormatSubtitled
}

// Session is a screening of a movie in a room at a start time ("HH:MM").
// OccupiedSeats holds distinct seat numbers in 1..Capacity.
type Session struct {
	ID            int64  `xml:"id" json:"id"`
	MovieID       int64  `xml:"movie_id" json:"movie_id"`
	Room          int    `xml:"room" json:"room"`
	StartTime     string `xml:"start_time" json:"start_time"`
	Capacity      int    `xml:"capacity" json:"capacity"`
	Format        Format `xml:"format" json:"format"`
	OccupiedSeats []int  `xml:"occupied_seats>seat" json:"occupied_seats"`
}

func (s Session) AvailableSeats() int {
	return s.Capacity - len(s.OccupiedSeats)
}

func (s Session) IsOccupied(seat int) bool {
	return slices.Contains(s.OccupiedSeats, seat)
}

// Clone returns a copy that does not share the occupied seat slice.
func (s Session) Clone() Session {
	out := s
	out.OccupiedSeats = slices.Clone(s.OccupiedSeats)
	if out.OccupiedSeats == nil {
		out.OccupiedSeats = []int{}
	}
	return out
}
