package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/thanhpk/randstr"
)

const (
	renderIndexKey      = "labyrinth:renders"
	defaultRetention    = 100
	imageExt            = ".png"
	thumbnailSuffix     = "_thumb"
	imageNameRandomSize = 8
)

var (
	ErrNoDirectory     = errors.New("no image directory set for session")
	ErrCatalogDisabled = errors.New("render catalog is not configured")
)

var _ i.RenderService = &RenderService{}

// RenderService writes maze images to the session directory, records them in the
// catalog and prunes the oldest files once more than the retention limit exist.
type RenderService struct {
	renderer      i.Renderer
	repo          i.RenderRepo
	index         i.SortedQueue
	retention     int64
	thumbnailSize uint
	metrics       i.MetricsRecorder
	logger        i.Logger
}

// RenderConfig holds the dependencies of a RenderService.
type RenderConfig struct {
	Renderer      i.Renderer
	Repo          i.RenderRepo  // optional catalog
	Index         i.SortedQueue // optional retention index
	Retention     int64
	ThumbnailSize uint // 0 disables thumbnails
	Metrics       i.MetricsRecorder
	Logger        i.Logger
}

// NewRenderService validates c and builds the service.
func NewRenderService(c *RenderConfig) (*RenderService, error) {
	if c == nil || c.Renderer == nil || c.Logger == nil {
		return nil, errors.New("render service requires a renderer and a logger")
	}
	retention := c.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	return &RenderService{
		renderer:      c.Renderer,
		repo:          c.Repo,
		index:         c.Index,
		retention:     retention,
		thumbnailSize: c.ThumbnailSize,
		metrics:       c.Metrics,
		logger:        c.Logger,
	}, nil
}

// Render implements i.RenderService.
func (r *RenderService) Render(ctx context.Context, session *dmn.Session) (*dmn.RenderRecord, error) {
	dir := session.Directory()
	if dir == "" {
		return nil, ErrNoDirectory
	}

	img := r.renderer.Draw(session.Grid)
	name := randstr.Hex(imageNameRandomSize)
	record := &dmn.RenderRecord{
		ID:        uuid.New(),
		SessionID: session.ID,
		Path:      filepath.Join(dir, name+imageExt),
		Width:     session.Grid.Width(),
		Height:    session.Grid.Height(),
		CreatedAt: time.Now().UTC(),
	}

	size, err := r.write(record.Path, img)
	if err != nil {
		r.logger.Error(fmt.Sprintf("writing image %s: %s", record.Path, err))
		return nil, err
	}
	record.Bytes = size

	if r.thumbnailSize > 0 {
		thumbPath := thumbnailPath(record.Path)
		if _, err := r.write(thumbPath, r.renderer.Thumbnail(img, r.thumbnailSize)); err != nil {
			r.logger.Warning(fmt.Sprintf("writing thumbnail %s: %s", thumbPath, err))
		} else {
			record.ThumbnailPath = thumbPath
		}
	}

	r.logger.Info(fmt.Sprintf("wrote %s (%s) for session %s", record.Path, humanize.Bytes(uint64(size)), session.ID))
	if r.metrics != nil {
		r.metrics.ObserveRender(size)
	}

	if r.repo != nil {
		if err := r.repo.Save(record); err != nil {
			r.logger.Warning(fmt.Sprintf("cataloguing %s: %s", record.Path, err))
		}
	}
	if r.index != nil {
		r.track(ctx, record.Path)
	}

	return record, nil
}

// History implements i.RenderService.
func (r *RenderService) History(session *dmn.Session) ([]*dmn.RenderRecord, error) {
	if r.repo == nil {
		return nil, ErrCatalogDisabled
	}
	return r.repo.BySession(session.ID)
}

// write encodes img into a new file at path and returns its size. The file is removed
// again when encoding or closing fails.
func (r *RenderService) write(path string, img image.Image) (size int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			size = 0
			_ = os.Remove(path)
		}
	}()

	if err = r.renderer.Encode(f, img); err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// track adds path to the retention index and deletes the oldest images beyond the limit.
func (r *RenderService) track(ctx context.Context, path string) {
	score := float64(time.Now().UnixNano())
	if err := r.index.Enqueue(ctx, renderIndexKey, score, path); err != nil {
		r.logger.Warning(fmt.Sprintf("indexing %s: %s", path, err))
		return
	}

	excess := r.index.Count(ctx, renderIndexKey) - r.retention
	if excess <= 0 {
		return
	}

	stale, err := r.index.DequeTops(ctx, renderIndexKey, excess)
	if err != nil {
		r.logger.Warning(fmt.Sprintf("obtaining pruning lock: %s", err))
		return
	}
	for _, old := range stale {
		for _, p := range []string{old, thumbnailPath(old)} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				r.logger.Warning(fmt.Sprintf("pruning %s: %s", p, err))
			}
		}
	}
	r.logger.Info(fmt.Sprintf("pruned %d old images", len(stale)))
}

func thumbnailPath(path string) string {
	return strings.TrimSuffix(path, imageExt) + thumbnailSuffix + imageExt
}
