package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api/identity"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/gin-gonic/gin"
)

const renderTimeout = 10 * time.Second

// MazeController serves maze generation, queries and images.
type MazeController struct {
	sessions i.MazeSessionManager
	renders  i.RenderService
}

// NewMazeController initializes a MazeController.
func NewMazeController(sm i.MazeSessionManager, rs i.RenderService) (*MazeController, error) {
	if sm == nil || rs == nil {
		return nil, errors.New("maze controller requires a session manager and a render service")
	}
	return &MazeController{
		sessions: sm,
		renders:  rs,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze", mc.newMaze)
}

// RegisterProtected registers routes that need a session token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	m := route.Group("/maze")
	{
		m.GET("/current", mc.current)
		m.GET("/cell", mc.cell)
		m.POST("/path", mc.path)
		m.POST("/directory", mc.directory)
		m.POST("/image", mc.image)
		m.GET("/images", mc.images)
	}
}

// newMaze generates a maze and opens a session for it.
func (mc *MazeController) newMaze(ctx *gin.Context) {
	var request NewMazeRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, token, err := mc.sessions.NewSession(request.Height, request.Width)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, toMazeResponse(session, token))
}

// current returns the maze of the calling session.
func (mc *MazeController) current(ctx *gin.Context) {
	id, _ := identity.SessionID(ctx)
	session, err := mc.sessions.Session(id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toMazeResponse(session, ""))
}

// cell returns a single cell.
func (mc *MazeController) cell(ctx *gin.Context) {
	var request CellRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, _ := identity.SessionID(ctx)
	c, err := mc.sessions.Cell(id, *request.X, *request.Y)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toCellResponse(c))
}

// path returns the cells joining two cells.
func (mc *MazeController) path(ctx *gin.Context) {
	var request PathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, _ := identity.SessionID(ctx)
	cells, err := mc.sessions.Path(id, *request.X1, *request.Y1, *request.X2, *request.Y2)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &PathResponse{
		Length: len(cells),
		Path:   toCellResponses(cells),
	})
}

// directory selects where the session's images go.
func (mc *MazeController) directory(ctx *gin.Context) {
	var request DirectoryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, _ := identity.SessionID(ctx)
	dir, err := mc.sessions.SetDirectory(id, request.Dir)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &DirectoryResponse{Dir: dir})
}

// image writes a PNG of the session's maze.
func (mc *MazeController) image(ctx *gin.Context) {
	id, _ := identity.SessionID(ctx)
	session, err := mc.sessions.Session(id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), renderTimeout)
	defer cancel()
	record, err := mc.renders.Render(timeoutCtx, session)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toRenderResponse(record))
}

// images lists the images written for the session.
func (mc *MazeController) images(ctx *gin.Context) {
	id, _ := identity.SessionID(ctx)
	session, err := mc.sessions.Session(id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	records, err := mc.renders.History(session)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	response := make([]*RenderResponse, 0, len(records))
	for _, r := range records {
		response = append(response, toRenderResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrOutOfRange),
		errors.Is(err, service.ErrInvalidDirectory),
		errors.Is(err, service.ErrNoDirectory):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrCatalogDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
