package domain

type Ticket struct {
	ID         int64   `xml:"id" json:"id"`
	CustomerID int64   `xml:"customer_id" json:"customer_id"`
	SessionID  int64   `xml:"session_id" json:"session_id"`
	SeatNumber int     `xml:"seat_number" json:"seat_number"`
	Price      float64 `xml:"price" json:"price"`
}
