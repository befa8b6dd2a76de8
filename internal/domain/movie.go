package domain

type Movie struct {
	ID              int64   `xml:"id" json:"id"`
	Title           string  `xml:"title" json:"title"`
	Synopsis        string  `xml:"synopsis" json:"synopsis"`
	Genre           string  `xml:"genre" json:"genre"`
	DurationMinutes float64 `xml:"duration" json:"duration_minutes"`
	AgeRating       int     `xml:"age_rating" json:"age_rating"`
	ReleaseDate     string  `xml:"release_date" json:"release_date,omitempty"`
}
