package models

type Event struct {
	ID              string `json:"event_id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	EntryTime       string `json:"entry_time"`
	Description     string `json:"description"`
	FeaturedArtists string `json:"featured_artists"`
}
