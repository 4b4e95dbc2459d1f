package dto

// GetPlaceRequest carries the query parameters of a place detail
// lookup.
type GetPlaceRequest struct {
	ID             string `validate:"required"`
	Lang           string `validate:"omitempty,bcp47_language_tag"`
	Verbosity      string `validate:"omitempty,oneof=long short list"`
	FollowRedirect bool
}

// ListPlacesRequest carries the query parameters of a bbox listing.
type ListPlacesRequest struct {
	RawBbox    string   `validate:"required"`
	Category   string   `validate:"omitempty"`
	RawFilters []string `validate:"omitempty"`
	Query      string   `validate:"omitempty"`
	Source     string   `validate:"omitempty,oneof=osm pages_jaunes"`
	Size       int      `validate:"omitempty,min=1,max=50"`
	Lang       string   `validate:"omitempty,bcp47_language_tag"`
	Verbosity  string   `validate:"omitempty,oneof=long short list"`
}

// ListEventsRequest carries the query parameters of an event listing.
type ListEventsRequest struct {
	RawBbox   string `validate:"required"`
	Size      int    `validate:"omitempty,min=1,max=50"`
	Lang      string `validate:"omitempty,bcp47_language_tag"`
	Verbosity string `validate:"omitempty,oneof=long short list"`
}
