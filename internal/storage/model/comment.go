package model

import "time"

type Comment struct {
	ID         int64     `db:"id"`
	ItemID     int64     `db:"item_id"`
	AuthorID   int64     `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Text       string    `db:"text"`
	Created    time.Time `db:"created"`
}
