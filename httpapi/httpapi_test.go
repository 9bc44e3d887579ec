package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zdnscloud/cement/log"
	ut "github.com/zdnscloud/cement/unittest"

	"github.com/zdnscloud/kvsession/backend/memory"
	"github.com/zdnscloud/kvsession/engine"
	"github.com/zdnscloud/kvsession/session"
)

func init() {
	log.InitLogger(log.Debug)
}

func newTestServer(t *testing.T) *httptest.Server {
	e := engine.New(memory.New())
	srv := httptest.NewServer(New(session.New(e)))
	t.Cleanup(func() {
		srv.Close()
		e.Close()
	})
	return srv
}

func do(t *testing.T, method, url string, body []byte) (int, []byte) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	ut.Equal(t, err, nil)
	resp, err := http.DefaultClient.Do(req)
	ut.Equal(t, err, nil)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	ut.Equal(t, err, nil)
	return resp.StatusCode, data
}

func TestItems(t *testing.T) {
	srv := newTestServer(t)
	items := srv.URL + "/api/v1/databases/testDB/collections/testStore/items"

	code, _ := do(t, http.MethodPut, items+"/init", []byte(`{"id":1,"name":"nkia"}`))
	ut.Equal(t, code, http.StatusNoContent)
	code, body := do(t, http.MethodGet, items+"/init", nil)
	ut.Equal(t, code, http.StatusOK)
	ut.Equal(t, string(body), `{"id":1,"name":"nkia"}`)

	code, _ = do(t, http.MethodPatch, items+"/init", []byte(`{"id":1,"name":"nkia222"}`))
	ut.Equal(t, code, http.StatusNoContent)
	_, body = do(t, http.MethodGet, items+"/init", nil)
	ut.Equal(t, string(body), `{"id":1,"name":"nkia222"}`)

	code, body = do(t, http.MethodGet, items, nil)
	ut.Equal(t, code, http.StatusOK)
	var all struct {
		Items [][]byte `json:"items"`
		Count int      `json:"count"`
	}
	ut.Equal(t, json.Unmarshal(body, &all), nil)
	ut.Equal(t, all.Count, 1)
	ut.Equal(t, string(all.Items[0]), `{"id":1,"name":"nkia222"}`)

	code, _ = do(t, http.MethodDelete, items+"/init", nil)
	ut.Equal(t, code, http.StatusNoContent)
	code, _ = do(t, http.MethodGet, items+"/init", nil)
	ut.Equal(t, code, http.StatusNotFound)

	code, _ = do(t, http.MethodDelete, items, nil)
	ut.Equal(t, code, http.StatusNoContent)
}

func TestMigrationAndVersion(t *testing.T) {
	srv := newTestServer(t)
	db := srv.URL + "/api/v1/databases/shop"

	code, body := do(t, http.MethodGet, db+"/version", nil)
	ut.Equal(t, code, http.StatusOK)
	var v struct {
		Version uint64 `json:"version"`
	}
	ut.Equal(t, json.Unmarshal(body, &v), nil)
	ut.Equal(t, v.Version, uint64(1))

	code, _ = do(t, http.MethodPost, db+"/collections/orders?key=first", []byte("seed"))
	ut.Equal(t, code, http.StatusCreated)
	_, body = do(t, http.MethodGet, db+"/version", nil)
	ut.Equal(t, json.Unmarshal(body, &v), nil)
	ut.Equal(t, v.Version, uint64(2))

	code, body = do(t, http.MethodGet, db+"/collections/orders/items/first", nil)
	ut.Equal(t, code, http.StatusOK)
	ut.Equal(t, string(body), "seed")

	code, _ = do(t, http.MethodPost, db+"/collections/orders", []byte("seed"))
	ut.Equal(t, code, http.StatusBadRequest)

	code, _ = do(t, http.MethodDelete, db, nil)
	ut.Equal(t, code, http.StatusNoContent)
}

func TestErrorStatus(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1/databases"

	code, _ := do(t, http.MethodPut, base+"/errors/collections/items/items/a", []byte("a"))
	ut.Equal(t, code, http.StatusNoContent)
	code, _ = do(t, http.MethodGet, base+"/errors/collections/missing/items", nil)
	ut.Equal(t, code, http.StatusNotFound)
	code, _ = do(t, http.MethodGet, base+"/.bad/version", nil)
	ut.Equal(t, code, http.StatusBadRequest)

	code, _ = do(t, http.MethodGet, srv.URL+"/healthz", nil)
	ut.Equal(t, code, http.StatusOK)
}
