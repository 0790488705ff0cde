package model

type Item struct {
	ID          int64  `db:"id"`
	OwnerID     int64  `db:"owner_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"available"`
}
