package urlstate

import (
	"net/url"
	"strings"
)

// Route paths
const (
	HomePath   = "/"
	ListPath   = "/list"
	detailPath = "/anime/"
)

// RouteKind identifies a view
type RouteKind int

const (
	RouteUnknown RouteKind = iota
	RouteHome
	RouteList
	RouteDetail
)

func (k RouteKind) String() string {
	switch k {
	case RouteHome:
		return "home"
	case RouteList:
		return "list"
	case RouteDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Route is a parsed location path
type Route struct {
	Kind RouteKind
	ID   string // set for RouteDetail
}

// ParseRoute maps a path (query string allowed) onto a view. The detail
// id is unescaped, so DetailPath and ParseRoute round-trip.
func ParseRoute(location string) Route {
	path, _ := Decode(location)
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	switch {
	case path == "/" || path == "":
		return Route{Kind: RouteHome}
	case path == ListPath:
		return Route{Kind: RouteList}
	case strings.HasPrefix(path, detailPath):
		segment := strings.TrimPrefix(path, detailPath)
		if segment == "" || strings.Contains(segment, "/") {
			return Route{Kind: RouteUnknown}
		}
		id, err := url.PathUnescape(segment)
		if err != nil {
			return Route{Kind: RouteUnknown}
		}
		return Route{Kind: RouteDetail, ID: id}
	default:
		return Route{Kind: RouteUnknown}
	}
}

// DetailPath returns the detail location of a content id
func DetailPath(id string) string {
	return detailPath + url.PathEscape(id)
}
