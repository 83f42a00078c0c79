package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	articleapp "github.com/annotext/annotext/internal/application/article"
	"github.com/annotext/annotext/internal/application/narration"
	"github.com/annotext/annotext/internal/config"
	domarticle "github.com/annotext/annotext/internal/domain/article"
	"github.com/annotext/annotext/internal/infrastructure/messaging/kafka"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/prometheus"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	"github.com/annotext/annotext/internal/interfaces/http/handlers"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

type memRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*domarticle.Article
}

func newMemRepo() *memRepo {
	return &memRepo{articles: make(map[uuid.UUID]*domarticle.Article)}
}

func (m *memRepo) Create(_ context.Context, a *domarticle.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[a.ID] = a
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*domarticle.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeArticleNotFound, "article not found")
	}
	return a, nil
}

func (m *memRepo) List(_ context.Context, _, _ int) ([]*domarticle.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domarticle.Article, 0, len(m.articles))
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.articles, id)
	return nil
}

type recordPublisher struct {
	mu     sync.Mutex
	events []kafka.Envelope
}

func (p *recordPublisher) Publish(_ context.Context, _ string, e kafka.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *recordPublisher) {
	t.Helper()
	logger := logging.NewNopLogger()
	pub := &recordPublisher{}

	articles := articleapp.NewService(newMemRepo(), nil, pub, prometheus.NewNopCollector(), logger)
	narrator := narration.NewService(&tts.FakeProvider{}, nil, logger)

	linker := func(_ *gin.Context, key string, _ time.Duration) (string, error) {
		return "https://store.local/audio/" + key, nil
	}
	health := handlers.NewHealthHandler("test", map[string]handlers.ReadinessCheck{
		"always": func(context.Context) error { return nil },
	})

	router := NewRouter(config.ServerConfig{}, RouterDeps{
		Articles:  handlers.NewArticleHandler(articles),
		Render:    handlers.NewRenderHandler(articles),
		Narration: handlers.NewNarrationHandler(narrator, pub, linker),
		Health:    health,
		Logger:    logger,
		Metrics:   prometheus.NewNopCollector(),
		CORS:      []string{"*"},
	})
	return router, pub
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleDocJSON() map[string]any {
	return map[string]any{
		"text": "The cat sleeps.",
		"sentences": []map[string]any{
			{"id": 1, "start": 0, "end": 15},
		},
		"annotations": []map[string]any{
			{"start": 0, "end": 7, "role": "s"},
			{"start": 8, "end": 14, "role": "v"},
		},
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/render", sampleDocJSON())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			HTML     string `json:"html"`
			Segments []struct {
				Text string `json:"text"`
			} `json:"segments"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.HTML, `data-role="s"`)
	require.Len(t, resp.Data.Segments, 1)
	assert.Equal(t, "The cat sleeps.", resp.Data.Segments[0].Text)
}

func TestRenderEndpoint_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticleLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/articles", map[string]any{
		"title":    "Cats",
		"document": sampleDocJSON(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID
	require.NotEmpty(t, id)

	w = doJSON(router, http.MethodGet, "/api/v1/articles/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/articles/"+id+"/render", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-sid=\"1\"`)

	w = doJSON(router, http.MethodDelete, "/api/v1/articles/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/articles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleEndpoint_BadID(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/api/v1/articles/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSynthesizeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/synthesize", map[string]any{
		"text": "The fox runs",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Boundaries []struct {
				Word string `json:"word"`
			} `json:"boundaries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Boundaries, 3)
	assert.Equal(t, "The", resp.Data.Boundaries[0].Word)
}

func TestNarrationRequestEndpoint(t *testing.T) {
	router, pub := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/articles", map[string]any{
		"title":    "Cats",
		"document": sampleDocJSON(),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodPost, "/api/v1/articles/"+created.Data.ID+"/narration", map[string]any{
		"voice": "en-GB-SoniaNeural",
		"rate":  1.25,
	})
	assert.Equal(t, http.StatusAccepted, w.Code)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	found := false
	for _, e := range pub.events {
		if e.Type == kafka.TopicNarrationRequested {
			var payload kafka.NarrationRequested
			require.NoError(t, e.Decode(&payload))
			assert.Equal(t, created.Data.ID, payload.ArticleID.String())
			assert.Equal(t, 1.25, payload.Rate)
			found = true
		}
	}
	assert.True(t, found)
}

func TestClipURLEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	id := uuid.NewString()

	w := doJSON(router, http.MethodGet, "/api/v1/articles/"+id+"/audio/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "articles/"+id+"/sentences/3.mp3")
}
