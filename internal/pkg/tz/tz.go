// Package tz resolves IANA timezone names from coordinates, backed by
// an embedded timezone boundary index.
package tz

import (
	"github.com/ringsaturn/tzf"
)

type Finder struct {
	finder tzf.F
}

func NewFinder() (*Finder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &Finder{finder: finder}, nil
}

func (f *Finder) TimezoneName(lat, lon float64) string {
	return f.finder.GetTimezoneName(lon, lat)
}
