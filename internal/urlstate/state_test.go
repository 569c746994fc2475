package urlstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/animabing/animabing/internal/models"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		state FilterState
		want  string
	}{
		{name: "defaults have no query", path: "/", state: DefaultState(), want: "/"},
		{name: "empty path", path: "", state: DefaultState(), want: "/"},
		{
			name:  "filter only",
			path:  "/",
			state: FilterState{SubDub: "Hindi Dub", ContentType: models.FilterAll},
			want:  "/?filter=Hindi+Dub",
		},
		{
			name:  "all three in fixed order",
			path:  "/list",
			state: FilterState{Search: "one piece", SubDub: "Hindi Sub & Dub", ContentType: "Manga"},
			want:  "/list?contentType=Manga&filter=Hindi+Sub+%26+Dub&search=one+piece",
		},
		{
			name:  "empty filters count as default",
			path:  "/",
			state: FilterState{},
			want:  "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.path, tt.state))
		})
	}
}

func TestDecode(t *testing.T) {
	path, params := Decode("/list?filter=Hindi%20Dub&search=&other=1")
	assert.Equal(t, "/list", path)
	assert.Equal(t, Param{Value: "Hindi Dub", Present: true}, params.Filter)
	assert.Equal(t, Param{Value: "", Present: true}, params.Search)
	assert.False(t, params.ContentType.Present)

	path, params = Decode("")
	assert.Equal(t, "/", path)
	assert.Equal(t, Params{}, params)

	path, _ = Decode("%zz")
	assert.Equal(t, "/", path)

	path, _ = Decode("/anime/a%20b")
	assert.Equal(t, "/anime/a%20b", path, "path keeps its escaping")
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "/?filter=Hindi+Dub", Canonical("/?filter=Hindi%20Dub"))
	assert.Equal(t, "/anime/a%20b", Canonical("/anime/a%20b"))
	assert.Equal(t, "/list?contentType=Movie&search=x", Canonical("/list?search=x&contentType=Movie&other=1"))
	assert.Equal(t, "/", Canonical("/?filter=All"))
}

func TestParamsApply(t *testing.T) {
	s := FilterState{Search: "naruto", SubDub: "Hindi Dub", ContentType: "Anime"}

	_, params := Decode("/?contentType=Movie")
	assert.True(t, params.Apply(&s))
	assert.Equal(t, FilterState{Search: "naruto", SubDub: "Hindi Dub", ContentType: "Movie"}, s)

	// same values again: nothing changes
	assert.False(t, params.Apply(&s))

	// present but empty resets to the default
	_, params = Decode("/?filter=&search=")
	assert.True(t, params.Apply(&s))
	assert.Equal(t, FilterState{SubDub: models.FilterAll, ContentType: "Movie"}, s)
}

func TestRoundTrip(t *testing.T) {
	searches := []string{"", "naruto", "one piece & friends", "ドラゴン"}
	subDubs := []string{models.FilterAll}
	for _, sd := range models.SubDubs {
		subDubs = append(subDubs, string(sd))
	}
	types := []string{models.FilterAll}
	for _, ct := range models.ContentTypes {
		types = append(types, string(ct))
	}

	for _, search := range searches {
		for _, subDub := range subDubs {
			for _, contentType := range types {
				s := FilterState{Search: search, SubDub: subDub, ContentType: contentType}
				encoded := Encode("/", s)
				assert.Equal(t, s, StateOf(encoded), "round trip of %q", encoded)

				if s.IsDefault() {
					assert.Equal(t, "/", encoded)
				}
			}
		}
	}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		location string
		want     Route
	}{
		{"/", Route{Kind: RouteHome}},
		{"", Route{Kind: RouteHome}},
		{"/?filter=Hindi+Dub", Route{Kind: RouteHome}},
		{"/list", Route{Kind: RouteList}},
		{"/list/", Route{Kind: RouteList}},
		{"/anime/65f0c0ffee", Route{Kind: RouteDetail, ID: "65f0c0ffee"}},
		{DetailPath("a b"), Route{Kind: RouteDetail, ID: "a b"}},
		{DetailPath("a/b"), Route{Kind: RouteDetail, ID: "a/b"}},
		{"/anime/a%20b?filter=Hindi+Dub", Route{Kind: RouteDetail, ID: "a b"}},
		{"/anime/", Route{Kind: RouteUnknown}},
		{"/anime/a/b", Route{Kind: RouteUnknown}},
		{"/privacy", Route{Kind: RouteUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRoute(tt.location))
		})
	}
}

func TestRouteKindString(t *testing.T) {
	assert.Equal(t, "home", RouteHome.String())
	assert.Equal(t, "detail", RouteDetail.String())
	assert.Equal(t, "unknown", RouteKind(99).String())
}
