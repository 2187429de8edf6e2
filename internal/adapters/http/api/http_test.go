package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/photos"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/adapters/source"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps implements api.Dependencies over a fixed entry list.
type fakeDeps struct {
	entries   []types.Entry
	refreshOK bool
	noSource  bool
	lastErr   error
}

func (f *fakeDeps) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n > len(f.entries) {
		n = len(f.entries)
	}
	return f.entries[:n], nil
}

func (f *fakeDeps) Rank(ctx context.Context, name string) (types.Entry, error) {
	for _, e := range f.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return types.Entry{}, repository.ErrNotFound
}

func (f *fakeDeps) Refresh(ctx context.Context) (bool, error) {
	if f.noSource {
		return false, source.ErrNoSource
	}
	return f.refreshOK, nil
}

func (f *fakeDeps) LastError() error { return f.lastErr }

func (f *fakeDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *fakeDeps, book *photos.Book) *httptest.Server {
	srv := api.NewServer(deps, deps, book, 10, 3)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a server with three ranked subjects", t, func() {
		deps := &fakeDeps{entries: []types.Entry{
			{Rank: 1, Name: "alice", Score: 10, Display: "10", Votes: 2},
			{Rank: 1, Name: "bob", Score: 10, Display: "10", Votes: 1},
			{Rank: 3, Name: "carol", Score: 7, Display: "7", Votes: 3},
		}}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When fetching the leaderboard with a limit", func() {
			resp, err := http.Get(ts.URL + "/leaderboard?limit=2")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the top entries come back in rank order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var entries []types.Entry
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Name, ShouldEqual, "alice")
				So(entries[1].Rank, ShouldEqual, 1)
			})
		})

		Convey("When omitting the limit", func() {
			resp, err := http.Get(ts.URL + "/leaderboard")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the configured maximum applies", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var entries []types.Entry
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
			})
		})

		Convey("When the limit is malformed or out of range", func() {
			for _, q := range []string{"?limit=abc", "?limit=0", "?limit=-3", "?limit=9999"} {
				resp, err := http.Get(ts.URL + "/leaderboard" + q)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				_ = resp.Body.Close()
			}
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given a server with known subjects", t, func() {
		deps := &fakeDeps{entries: []types.Entry{
			{Rank: 1, Name: "alice smith", Score: 10, Display: "10"},
		}}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When requesting a subject with a space in the name", func() {
			resp, err := http.Get(ts.URL + "/rank/alice%20smith")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the percent-encoded segment resolves", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var e types.Entry
				So(json.NewDecoder(resp.Body).Decode(&e), ShouldBeNil)
				So(e.Name, ShouldEqual, "alice smith")
				So(e.Rank, ShouldEqual, 1)
			})
		})

		Convey("When requesting an unknown subject", func() {
			resp, err := http.Get(ts.URL + "/rank/nobody")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the API answers 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestPodiumEndpoint(t *testing.T) {
	Convey("Given a server with a photo book", t, func() {
		deps := &fakeDeps{entries: []types.Entry{
			{Rank: 1, Name: "alice smith", Score: 10, Display: "10"},
			{Rank: 2, Name: "bob", Score: 8, Display: "8"},
		}}
		book := photos.FromMap(map[string]string{"alice smith": "https://cdn.example/alice.png"})
		ts := newTestServer(deps, book)
		defer ts.Close()

		Convey("When fetching the podium", func() {
			resp, err := http.Get(ts.URL + "/podium")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then mapped subjects carry photos and others initials", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var podium []types.PodiumEntry
				So(json.NewDecoder(resp.Body).Decode(&podium), ShouldBeNil)
				So(podium, ShouldHaveLength, 2)
				So(podium[0].Photo, ShouldEqual, "https://cdn.example/alice.png")
				So(podium[0].Initials, ShouldBeEmpty)
				So(podium[1].Photo, ShouldBeEmpty)
				So(podium[1].Initials, ShouldEqual, "B")
			})
		})

		Convey("When n is malformed", func() {
			resp, err := http.Get(ts.URL + "/podium?n=zero")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRefreshEndpoint(t *testing.T) {
	Convey("Given a server that accepts refreshes", t, func() {
		deps := &fakeDeps{refreshOK: true}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When posting a refresh", func() {
			resp, err := http.Post(ts.URL+"/refresh", "application/json", nil)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(ts.URL + "/refresh")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a server over its refresh budget", t, func() {
		deps := &fakeDeps{refreshOK: false}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When posting a refresh", func() {
			resp, err := http.Post(ts.URL+"/refresh", "application/json", nil)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
		})
	})

	Convey("Given a server with no source configured", t, func() {
		deps := &fakeDeps{noSource: true}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When posting a refresh", func() {
			resp, err := http.Post(ts.URL+"/refresh", "application/json", nil)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a server with a banner error", t, func() {
		deps := &fakeDeps{lastErr: &source.TransportError{Source: "csv", StatusCode: 502}}
		ts := newTestServer(deps, nil)
		defer ts.Close()

		Convey("When fetching stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the banner carries the upstream status", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
				So(stats["banner"], ShouldContainSubstring, "502")
			})
		})
	})
}
