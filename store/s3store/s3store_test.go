package s3store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/tryinvest/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves path-style GetObject and PutObject requests from a map.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !strings.HasPrefix(r.URL.Path, "/invest/") {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist.</Message></Error>`)
		return
	}
	switch r.Method {
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.objects[r.URL.Path] = data
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T) (*Store, *fakeS3) {
	return newBucketStore(t, "invest")
}

func newBucketStore(t *testing.T, bucket string) (*Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(context.Background(), Config{
		Endpoint:       srv.URL,
		Region:         "us-east-1",
		Bucket:         bucket,
		Prefix:         "alice",
		AccessKey:      "test",
		SecretKey:      "test",
		ForcePathStyle: true,
	})
	require.NoError(t, err)
	return s, fake
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s, fake := newStore(t)

	_, err := s.Load(ctx, store.PortfoliosKey)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Save(ctx, store.PortfoliosKey, []byte(`{"CURRENT":0}`)))
	fake.mu.Lock()
	assert.Equal(t, `{"CURRENT":0}`, string(fake.objects["/invest/alice/portfolios.json"]))
	assert.Equal(t, "application/json", fake.types["/invest/alice/portfolios.json"])
	fake.mu.Unlock()

	data, err := s.Load(ctx, store.PortfoliosKey)
	require.NoError(t, err)
	assert.Equal(t, `{"CURRENT":0}`, string(data))

	assert.ErrorIs(t, s.Save(ctx, "../escape", nil), store.ErrInvalidKey)
}

func TestStore_MissingBucket(t *testing.T) {
	s, _ := newBucketStore(t, "typo")
	_, err := s.Load(context.Background(), store.PortfoliosKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound, "a missing bucket is not a first run")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"})
	assert.Error(t, err)
	_, err = New(context.Background(), Config{Bucket: "invest"})
	assert.Error(t, err)
}

func TestNormaliseEndpoint(t *testing.T) {
	assert.Equal(t, "http://minio:9000", normaliseEndpoint("minio:9000", false))
	assert.Equal(t, "https://minio:9000", normaliseEndpoint("minio:9000", true))
	assert.Equal(t, "https://s3.example.com", normaliseEndpoint("https://s3.example.com", false))
	assert.True(t, strings.HasPrefix(normaliseEndpoint("localhost", false), "http://"))
}
