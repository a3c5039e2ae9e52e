package model

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	AuthorID    string `db:"author_id" json:"author"`

	// Seq records insertion order and breaks sort ties.
	Seq int64 `db:"seq" json:"-"`
}

// SearchText returns the fields a free-text search term is matched against.
func (c *Category) SearchText() []string {
	return []string{c.Name, c.Description}
}
