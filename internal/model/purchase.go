package model

import (
	"math"
)

// DateFormat is the calendar-date layout used everywhere a purchase date
// crosses a boundary. Purchases carry no time-of-day component.
const DateFormat = "2006-01-02"

type Purchase struct {
	ID         string  `db:"id" json:"id"`
	Date       string  `db:"date" json:"date"`
	Category   string  `db:"category" json:"category"`
	Item       string  `db:"item" json:"item"`
	Price      float64 `db:"price" json:"price"`
	Quantity   int     `db:"quantity" json:"quantity"`
	TotalPrice float64 `db:"total_price" json:"total_price"`
	AuthorID   string  `db:"author_id" json:"author"`

	// Seq records insertion order and breaks sort ties.
	Seq int64 `db:"seq" json:"-"`
}

// RecomputeTotal keeps total_price consistent with price and quantity,
// rounded to cents.
func (p *Purchase) RecomputeTotal() {
	p.TotalPrice = math.Round(p.Price*float64(p.Quantity)*100) / 100
}

// SearchText returns the fields a free-text search term is matched against.
func (p *Purchase) SearchText() []string {
	return []string{p.Date, p.Category, p.Item}
}
