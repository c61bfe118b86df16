package mazeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api"
	"github.com/beka-birhanu/labyrinth-api/api/i"
	"github.com/beka-birhanu/labyrinth-api/api/identity"
	"github.com/beka-birhanu/labyrinth-api/config"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/log"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/render"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/sessionstore"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/token"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := logger.New("TEST", config.ColorCyan, io.Discard)
	require.NoError(t, err)
	store, err := sessionstore.NewLRUStore(16, time.Minute, nil)
	require.NoError(t, err)

	sessions, err := service.NewMazeSessionManager(&service.Config{
		Store:     store,
		Tokenizer: token.NewJwtService("controller-secret", "labyrinth-test"),
		Logger:    l,
	})
	require.NoError(t, err)
	renders, err := service.NewRenderService(&service.RenderConfig{
		Renderer: render.NewPNGRenderer(),
		Logger:   l,
	})
	require.NoError(t, err)

	controller, err := NewMazeController(sessions, renders)
	require.NoError(t, err)

	return api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(sessions),
	}).Engine()
}

func do(engine *gin.Engine, method, url string, body any, tok string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createMaze(t *testing.T, engine *gin.Engine, height, width int) MazeResponse {
	t.Helper()
	w := do(engine, http.MethodGet, "/api/v1/maze?width="+strconv.Itoa(width)+"&height="+strconv.Itoa(height), nil, "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var response MazeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestMazeControllerNewMaze(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("generates a maze and returns a token", func(t *testing.T) {
		response := createMaze(t, engine, 3, 4)

		assert.NotEmpty(t, response.Token)
		assert.Equal(t, 3, response.Height)
		assert.Equal(t, 4, response.Width)
		require.Len(t, response.Cells, 3)
		for y, row := range response.Cells {
			require.Len(t, row, 4)
			for x, c := range row {
				assert.Equal(t, x, c.X)
				assert.Equal(t, y, c.Y)
			}
		}
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		for _, url := range []string{
			"/api/v1/maze?width=0&height=3",
			"/api/v1/maze?width=51&height=3",
			"/api/v1/maze?width=3&height=-1",
			"/api/v1/maze?width=3",
			"/api/v1/maze?width=abc&height=3",
		} {
			w := do(engine, http.MethodGet, url, nil, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, url)
		}
	})
}

func TestMazeControllerAuthorization(t *testing.T) {
	engine := newTestEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/maze/current", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(engine, http.MethodGet, "/api/v1/maze/current", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/maze/current", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a token from another server instance names a session this one does not hold
	other := createMaze(t, newTestEngine(t), 2, 2)
	w = do(engine, http.MethodGet, "/api/v1/maze/current", nil, other.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMazeControllerQueries(t *testing.T) {
	engine := newTestEngine(t)
	created := createMaze(t, engine, 3, 4)
	tok := created.Token

	t.Run("current", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/maze/current", nil, tok)
		require.Equal(t, http.StatusOK, w.Code)

		var response MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, created.SessionID, response.SessionID)
		assert.Empty(t, response.Token)
		assert.Equal(t, created.Cells, response.Cells)
	})

	t.Run("cell", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/maze/cell?x=1&y=2", nil, tok)
		require.Equal(t, http.StatusOK, w.Code)

		var c CellResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, created.Cells[2][1], c)

		w = do(engine, http.MethodGet, "/api/v1/maze/cell?x=0&y=0", nil, tok)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(engine, http.MethodGet, "/api/v1/maze/cell?x=4&y=0", nil, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(engine, http.MethodGet, "/api/v1/maze/cell?x=1", nil, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("path", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/api/v1/maze/path", gin.H{"x1": 0, "y1": 0, "x2": 3, "y2": 2}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response PathResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotEmpty(t, response.Path)
		assert.Equal(t, len(response.Path), response.Length)
		assert.Equal(t, CellResponse{X: 0, Y: 0}, withoutWalls(response.Path[0]))
		assert.Equal(t, CellResponse{X: 3, Y: 2}, withoutWalls(response.Path[response.Length-1]))

		w = do(engine, http.MethodPost, "/api/v1/maze/path", gin.H{"x1": 0, "y1": 0, "x2": 4, "y2": 2}, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(engine, http.MethodPost, "/api/v1/maze/path", gin.H{"x1": 0, "y1": 0}, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func withoutWalls(c CellResponse) CellResponse {
	return CellResponse{X: c.X, Y: c.Y}
}

func TestMazeControllerImages(t *testing.T) {
	engine := newTestEngine(t)
	tok := createMaze(t, engine, 2, 3).Token

	w := do(engine, http.MethodPost, "/api/v1/maze/image", nil, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code, "no directory chosen yet")

	w = do(engine, http.MethodPost, "/api/v1/maze/directory", gin.H{"dir": filepath.Join(t.TempDir(), "missing")}, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	dir := t.TempDir()
	w = do(engine, http.MethodPost, "/api/v1/maze/directory", gin.H{"dir": dir}, tok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(engine, http.MethodPost, "/api/v1/maze/image", nil, tok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.FileExists(t, record.Path)
	assert.Positive(t, record.Bytes)

	w = do(engine, http.MethodGet, "/api/v1/maze/images", nil, tok)
	assert.Equal(t, http.StatusNotFound, w.Code, "no catalog configured")
}
