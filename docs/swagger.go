// Package docs Places API.
//
// Read side of the maps product: resolves a place identifier to a
// normalized place document and decorates it with detail blocks
// (opening hours, contact details, images, grades, weather and more)
// pulled from the geocoding index and third-party sources.
//
// Main capabilities:
// - Place lookup by identifier (OSM, directory, events, raw coordinates)
// - Category and class/subclass listing inside a bounding box
// - Cultural event lookup and listing
// - Language-aware names, addresses and descriptions
//
//	Schemes: http, https
//	BasePath: /v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
