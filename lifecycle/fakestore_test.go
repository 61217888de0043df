package lifecycle_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

// fakeStore is an in-memory stand-in for the JSON resource store. It speaks
// the same protocol as cmd/datastore: versioned records, ETag on reads,
// If-Match checked on writes.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	userVer  map[string]int
	products map[string]*models.Product
	prodVer  map[string]int

	// fail, keyed "METHOD /path", makes matching requests answer 503.
	fail map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		userVer:  make(map[string]int),
		products: make(map[string]*models.Product),
		prodVer:  make(map[string]int),
		fail:     make(map[string]bool),
	}
}

func (f *fakeStore) addUser(u models.User) {
	f.users[u.ID] = &u
	f.userVer[u.ID] = 1
}

func (f *fakeStore) addProduct(p models.Product) {
	f.products[p.ID] = &p
	f.prodVer[p.ID] = 1
}

func (f *fakeStore) failOn(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method+" "+path] = true
}

func (f *fakeStore) clearFailure(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fail, method+" "+path)
}

func (f *fakeStore) server() *httptest.Server {
	return httptest.NewServer(f)
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail[r.Method+" "+r.URL.Path] {
		http.Error(w, "injected failure", http.StatusServiceUnavailable)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch parts[0] {
	case "users":
		f.serveUsers(w, r, parts[1:])
	case "products":
		f.serveProducts(w, r, parts[1:])
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeStore) serveUsers(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ids := make([]string, 0, len(f.users))
		for id := range f.users {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]models.User, 0, len(ids))
		for _, id := range ids {
			out = append(out, *f.users[id])
		}
		writeJSON(w, out)
		return
	}

	id := rest[0]
	user, ok := f.users[id]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("ETag", strconv.Itoa(f.userVer[id]))
		writeJSON(w, user)
	case http.MethodPatch:
		if !f.matchUser(w, r, id) {
			return
		}
		var patch struct {
			IsBlock *bool           `json:"isBlock"`
			Orders  *[]models.Order `json:"orders"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if patch.IsBlock != nil {
			user.IsBlock = *patch.IsBlock
		}
		if patch.Orders != nil {
			user.Orders = *patch.Orders
		}
		f.userVer[id]++
		w.Header().Set("ETag", strconv.Itoa(f.userVer[id]))
		writeJSON(w, user)
	case http.MethodPut:
		if !f.matchUser(w, r, id) {
			return
		}
		var replacement models.User
		if err := json.NewDecoder(r.Body).Decode(&replacement); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		replacement.ID = id
		f.users[id] = &replacement
		f.userVer[id]++
		w.Header().Set("ETag", strconv.Itoa(f.userVer[id]))
		writeJSON(w, &replacement)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) serveProducts(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ids := make([]string, 0, len(f.products))
		for id := range f.products {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]models.Product, 0, len(ids))
		for _, id := range ids {
			out = append(out, *f.products[id])
		}
		writeJSON(w, out)
		return
	}

	id := rest[0]
	product, ok := f.products[id]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("ETag", strconv.Itoa(f.prodVer[id]))
		writeJSON(w, product)
	case http.MethodPatch:
		if match := r.Header.Get("If-Match"); match != "" && match != strconv.Itoa(f.prodVer[id]) {
			http.Error(w, "version mismatch", http.StatusPreconditionFailed)
			return
		}
		var patch struct {
			Count *int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if patch.Count != nil {
			product.Count = *patch.Count
		}
		f.prodVer[id]++
		w.Header().Set("ETag", strconv.Itoa(f.prodVer[id]))
		writeJSON(w, product)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) matchUser(w http.ResponseWriter, r *http.Request, id string) bool {
	if match := r.Header.Get("If-Match"); match != "" && match != strconv.Itoa(f.userVer[id]) {
		http.Error(w, "version mismatch", http.StatusPreconditionFailed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
