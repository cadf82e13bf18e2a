package models

// Place is a point of interest returned by the nearby search.
type Place struct {
	ID      int64             `json:"id"`
	Type    string            `json:"type"` // "node" or "way"
	Name    string            `json:"name,omitempty"`
	Amenity string            `json:"amenity"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Tags    map[string]string `json:"tags,omitempty"`
}
