package domain

type Customer struct {
	ID       int64  `xml:"id" json:"id"`
	Name     string `xml:"name" json:"name"`
	Document string `xml:"document" json:"document"`
}
