package puppybowl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
	"github.com/preston-bernstein/puppy-bowl-client/internal/testutil"
)

const testBase = "http://example.com/api/2302-TEST"

const rosterBody = `{
	"success": true,
	"data": {
		"players": [
			{"id": 1, "name": "Brutus", "breed": "Boxer", "status": "field", "imageUrl": "https://img.example/brutus.png",
			 "teamId": 7, "cohortId": 3, "createdAt": "2023-03-01T10:00:00.000Z", "updatedAt": "2023-03-01T10:00:00.000Z"},
			{"id": 2, "name": "Daisy", "breed": "Beagle", "status": "bench", "imageUrl": "",
			 "teamId": null, "cohortId": 3, "createdAt": "2023-03-01T10:00:00.000Z", "updatedAt": "2023-03-01T10:00:00.000Z"}
		]
	},
	"error": null
}`

func newTestClient(rt testutil.RoundTripperFunc, retries int) (*Client, *bytes.Buffer, *metrics.Recorder) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	client := NewClient(Config{
		BaseURL:    testBase,
		HTTPClient: &http.Client{Transport: rt},
		Retries:    retries,
		Backoff:    time.Millisecond,
		Logger:     logger,
		Metrics:    rec,
	})
	return client, buf, rec
}

func TestListPlayersHitsAPIAndUnwrapsEnvelope(t *testing.T) {
	var captured *http.Request
	client, _, rec := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return testutil.JSONResponse(http.StatusOK, rosterBody), nil
	}, 0)

	roster := client.ListPlayers(context.Background())

	if captured.Method != http.MethodGet || captured.URL.String() != testBase+"/players" {
		t.Fatalf("unexpected request %s %s", captured.Method, captured.URL)
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 players, got %d", len(roster))
	}
	if roster[0].Name != "Brutus" || roster[0].TeamLabel() != "7" {
		t.Fatalf("unexpected first player %+v", roster[0])
	}
	if !roster[1].IsFreeAgent() || roster[1].Image() != players.PlaceholderImageURL {
		t.Fatalf("expected second player to be an imageless free agent, got %+v", roster[1])
	}
	if rec.APICalls(OpListPlayers) != 1 || rec.APIErrors(OpListPlayers) != 0 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot(OpListPlayers))
	}
}

func TestGetPlayerRequestsExactURL(t *testing.T) {
	for _, id := range []int{1, 42, 9001} {
		var gotURL string
		client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			body := `{"success":true,"data":{"player":{"id":` + strconv.Itoa(id) + `,"name":"Rex","breed":"Pug","status":"bench","teamId":null}},"error":null}`
			return testutil.JSONResponse(http.StatusOK, body), nil
		}, 0)

		p, ok := client.GetPlayer(context.Background(), id)
		if !ok {
			t.Fatalf("expected player %d", id)
		}
		if want := testBase + "/players/" + strconv.Itoa(id); gotURL != want {
			t.Fatalf("expected url %s, got %s", want, gotURL)
		}
		if p.ID != id || p.Name != "Rex" {
			t.Fatalf("unexpected player %+v", p)
		}
	}
}

func TestCreatePlayerPostsJSONPayload(t *testing.T) {
	payload := players.NewPlayer{
		Name:     "Pip",
		Breed:    "Pug",
		Status:   players.StatusField,
		ImageURL: players.PlaceholderImageURL,
		TeamID:   players.TeamID(4),
	}
	var sent players.NewPlayer
	var method, contentType, url string
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		method, contentType, url = req.Method, req.Header.Get("Content-Type"), req.URL.String()
		raw, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(raw, &sent); err != nil {
			t.Fatalf("request body is not json: %v", err)
		}
		body := `{"success":true,"data":{"newPlayer":{"id":77,"name":"Pip","breed":"Pug","status":"field","teamId":4,"cohortId":3}},"error":null}`
		return testutil.JSONResponse(http.StatusOK, body), nil
	}, 0)

	created, ok := client.CreatePlayer(context.Background(), payload)

	if !ok || created.ID != 77 {
		t.Fatalf("expected created player 77, got %+v ok=%v", created, ok)
	}
	if method != http.MethodPost || contentType != "application/json" || url != testBase+"/players" {
		t.Fatalf("unexpected request %s %s %s", method, url, contentType)
	}
	if !reflect.DeepEqual(sent, payload) {
		t.Fatalf("expected body %+v, got %+v", payload, sent)
	}
}

func TestDeletePlayerIssuesDelete(t *testing.T) {
	var method, url string
	client, buf, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		method, url = req.Method, req.URL.String()
		return testutil.JSONResponse(http.StatusOK, `{"success":true,"data":{"message":"player removed"},"error":null}`), nil
	}, 0)

	client.DeletePlayer(context.Background(), 5)

	if method != http.MethodDelete || url != testBase+"/players/5" {
		t.Fatalf("unexpected request %s %s", method, url)
	}
	if !strings.Contains(buf.String(), "player removed") {
		t.Fatalf("expected confirmation to be logged, got %q", buf.String())
	}
}

func TestNetworkFailuresAreLoggedAndSwallowed(t *testing.T) {
	client, buf, rec := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp 10.0.0.1:443: connection refused")
	}, 0)
	ctx := context.Background()

	roster := client.ListPlayers(ctx)
	if roster == nil || len(roster) != 0 {
		t.Fatalf("expected empty non-nil roster, got %#v", roster)
	}
	if _, ok := client.GetPlayer(ctx, 1); ok {
		t.Fatalf("expected absent player")
	}
	if _, ok := client.CreatePlayer(ctx, players.NewPlayer{Name: "Pip"}); ok {
		t.Fatalf("expected absent created player")
	}
	client.DeletePlayer(ctx, 1)

	out := buf.String()
	if got := strings.Count(out, "connection refused"); got != 4 {
		t.Fatalf("expected underlying failure logged for all four calls, got %d in %q", got, out)
	}
	if !strings.Contains(out, "kind=network") || !strings.Contains(out, "level=ERROR") {
		t.Fatalf("expected network errors at error level, got %q", out)
	}
	if rec.APIErrors(OpDeletePlayer) != 1 {
		t.Fatalf("expected delete error to be counted")
	}
}

func TestStrictMethodsReturnTypedErrors(t *testing.T) {
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("reset by peer")
	}, 0)

	_, err := client.FetchPlayers(context.Background())
	netErr, ok := AsNetworkError(err)
	if !ok || netErr.Operation != OpListPlayers || !strings.Contains(err.Error(), "reset by peer") {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestAPIReportedErrorsAreLogged(t *testing.T) {
	cases := map[string]string{
		"string":    `{"success":false,"error":"Player 12 not found","data":null}`,
		"object":    `{"success":false,"error":{"name":"NotFound","message":"Player 12 not found"},"data":null}`,
		"no-status": `{"error":"Player 12 not found"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, buf, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
				return testutil.JSONResponse(http.StatusOK, body), nil
			}, 0)

			_, err := client.FetchPlayer(context.Background(), 12)
			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Message != "Player 12 not found" {
				t.Fatalf("expected api error, got %v", err)
			}

			if _, ok := client.GetPlayer(context.Background(), 12); ok {
				t.Fatalf("expected absent player")
			}
			if !strings.Contains(buf.String(), "Player 12 not found") || !strings.Contains(buf.String(), "kind=api") {
				t.Fatalf("expected api error in log, got %q", buf.String())
			}
		})
	}
}

func TestNon2xxStatusBecomesAPIError(t *testing.T) {
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return testutil.JSONResponse(http.StatusNotFound, `{"success":false,"error":"no such player"}`), nil
	}, 0)

	_, err := client.RemovePlayer(context.Background(), 3)
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "no such player" {
		t.Fatalf("expected 404 api error, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	client, buf, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return testutil.JSONResponse(http.StatusOK, "{bad json"), nil
	}, 0)

	if _, err := client.FetchPlayers(context.Background()); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if roster := client.ListPlayers(context.Background()); len(roster) != 0 {
		t.Fatalf("expected empty roster on decode error")
	}
	if !strings.Contains(buf.String(), "kind=decode") {
		t.Fatalf("expected decode kind in log, got %q", buf.String())
	}
}

func TestMissingPayloadIsDecodeError(t *testing.T) {
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return testutil.JSONResponse(http.StatusOK, `{"success":true,"data":null,"error":null}`), nil
	}, 0)

	if _, err := client.FetchPlayer(context.Background(), 1); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error for missing player, got %v", err)
	}
	roster, err := client.FetchPlayers(context.Background())
	if err != nil || roster == nil || len(roster) != 0 {
		t.Fatalf("expected empty roster for missing list data, got %v %v", roster, err)
	}
}

func TestInvalidIDIsProgrammerErrorWithoutRequest(t *testing.T) {
	calls := 0
	client, buf, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return testutil.JSONResponse(http.StatusOK, `{}`), nil
	}, 0)

	if _, ok := client.GetPlayer(context.Background(), 0); ok {
		t.Fatalf("expected absent player for id 0")
	}
	client.DeletePlayer(context.Background(), -3)

	if calls != 0 {
		t.Fatalf("expected no requests for invalid ids, got %d", calls)
	}
	if got := strings.Count(buf.String(), "kind=programmer"); got != 2 {
		t.Fatalf("expected two programmer errors logged, got %q", buf.String())
	}
}

func TestReadsRetryTransientFailures(t *testing.T) {
	calls := 0
	client, buf, rec := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls < 3 {
			return testutil.JSONResponse(http.StatusServiceUnavailable, `{"error":"warming up"}`), nil
		}
		return testutil.JSONResponse(http.StatusOK, rosterBody), nil
	}, 2)

	roster := client.ListPlayers(context.Background())

	if calls != 3 || len(roster) != 2 {
		t.Fatalf("expected success on third attempt, got %d calls %d players", calls, len(roster))
	}
	if got := strings.Count(buf.String(), "api read retry"); got != 2 {
		t.Fatalf("expected 2 retry warnings, got %d", got)
	}
	if rec.APICalls(OpListPlayers) != 3 || rec.APIErrors(OpListPlayers) != 2 {
		t.Fatalf("expected every attempt recorded, got %+v", rec.Snapshot(OpListPlayers))
	}
}

func TestReadsStopAfterMaxRetries(t *testing.T) {
	calls := 0
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("no route to host")
	}, 2)

	if _, ok := client.GetPlayer(context.Background(), 1); ok {
		t.Fatalf("expected failure")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestReadsDoNotRetryClientErrors(t *testing.T) {
	calls := 0
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return testutil.JSONResponse(http.StatusOK, `{"error":"Player 9 not found"}`), nil
	}, 2)

	client.GetPlayer(context.Background(), 9)
	if calls != 1 {
		t.Fatalf("expected a single attempt for api-reported not found, got %d", calls)
	}
}

func TestWritesAreNeverRetried(t *testing.T) {
	calls := 0
	client, _, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return testutil.JSONResponse(http.StatusBadGateway, "upstream down"), nil
	}, 3)
	ctx := context.Background()

	client.CreatePlayer(ctx, players.NewPlayer{Name: "Pip"})
	client.DeletePlayer(ctx, 1)

	if calls != 2 {
		t.Fatalf("expected one attempt per write, got %d", calls)
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
	if c.BaseURL() != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.BaseURL())
	}
}
