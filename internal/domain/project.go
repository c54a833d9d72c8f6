package domain

import "time"

type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       *string   `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
