package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/hsnony97-cyber/Load-Ext/internal/batch"
	"github.com/hsnony97-cyber/Load-Ext/internal/jobstore"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

const dump = `{
  "grids": [{"id": 1, "x": [0, 0, 0]}],
  "results": {
    "displacements": {"1": {"nodes": [1], "data": [[[1, 2, 3, 0, 0, 0]]]}},
    "stress": {}, "strain": {}, "force": {}
  }
}`

func newTestServer(t *testing.T) (*Server, *echo.Echo) {
	t.Helper()
	store, err := jobstore.Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	server := NewServer(context.Background(), store)
	e := echo.New()
	server.Register(e)
	return server, e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetBatch(t *testing.T) {
	t.Parallel()

	server, e := newTestServer(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "plate.json")
	if err := os.WriteFile(input, []byte(dump), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	out := filepath.Join(dir, "out")

	body, _ := json.Marshal(CreateBatchRequest{Inputs: []string{dir}, OutputDir: out, Format: "rcf"})
	rec := doJSON(t, e, http.MethodPost, "/v1/batches", string(body))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("create status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var created CreateBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ID == "" || len(created.Inputs) != 1 || created.Inputs[0] != input {
		t.Fatalf("created: got %+v", created)
	}

	server.Wait()

	rec = doJSON(t, e, http.MethodGet, "/v1/batches/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var got BatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.Status != batch.BatchDone || len(got.Files) != 1 || got.Files[0].Status != string(batch.StatusOK) {
		t.Fatalf("batch: got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(out, "plate.rcf")); err != nil {
		t.Fatalf("output: %v", err)
	}

	rec = doJSON(t, e, http.MethodGet, "/v1/batches?limit=5", "")
	var list BatchList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].ID != created.ID {
		t.Fatalf("list: got %+v", list)
	}
}

func TestCreateBatchValidation(t *testing.T) {
	t.Parallel()

	_, e := newTestServer(t)
	cases := []struct {
		name  string
		body  string
		param string
	}{
		{"malformed", `{"inputs":`, ""},
		{"unknown field", `{"inputs":["a.json"],"priority":1}`, ""},
		{"no inputs", `{}`, "inputs"},
		{"bad format", `{"inputs":["a.json"],"format":"xlsx"}`, "format"},
		{"negative workers", `{"inputs":["a.json"],"workers":-1}`, "workers"},
		{"missing input", `{"inputs":["/does/not/exist.json"]}`, ""},
	}
	for _, tc := range cases {
		rec := doJSON(t, e, http.MethodPost, "/v1/batches", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d want 400 body=%s", tc.name, rec.Code, rec.Body.String())
		}
		if tc.param != "" && !strings.Contains(rec.Body.String(), `"param":"`+tc.param+`"`) {
			t.Fatalf("%s: missing param %q in %s", tc.name, tc.param, rec.Body.String())
		}
	}
}

func TestGetBatchNotFound(t *testing.T) {
	t.Parallel()

	_, e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/v1/batches/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodGet, "/v1/batches?limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: got %d want 400", rec.Code)
	}
}

func TestListLayouts(t *testing.T) {
	t.Parallel()

	_, e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/v1/layouts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var list LayoutList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Data) != len(nh5.Layouts()) {
		t.Fatalf("layouts: got %d want %d", len(list.Data), len(nh5.Layouts()))
	}
	for _, l := range list.Data {
		if l.Name == "INDEX" {
			if l.Size != nh5.Index.Size() || l.Descr != nh5.Index.Descr() {
				t.Fatalf("INDEX: got %+v", l)
			}
			return
		}
	}
	t.Fatalf("INDEX layout missing")
}
