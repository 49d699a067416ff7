package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/canvas"
	"github.com/youruser/canvasapp/internal/config"
	"github.com/youruser/canvasapp/internal/core"
	"github.com/youruser/canvasapp/internal/export"
	imagepkg "github.com/youruser/canvasapp/internal/image"
	"github.com/youruser/canvasapp/internal/ink"
)

// Server carries the collaborators the handlers need.
type Server struct {
	cfg      config.Config
	store    core.PhotoStore
	exporter *export.Exporter
}

// NewServer wires handlers to store.
func NewServer(cfg config.Config, store core.PhotoStore) *Server {
	return &Server{cfg: cfg, store: store, exporter: export.New(store)}
}

// composeRequest is the JSON body for compose and save.
type composeRequest struct {
	Canvas          imagepkg.Size `json:"canvas"`
	Scale           float64       `json:"scale"`
	Strokes         []ink.Stroke  `json:"strokes"`
	Background      []byte        `json:"background"`
	BackgroundURL   string        `json:"background_url"`
	BackgroundScale float64       `json:"background_scale"`
	Filter          string        `json:"filter"`
}

type layoutRequest struct {
	View    imagepkg.Size `json:"view"`
	Strokes []ink.Stroke  `json:"strokes"`
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resizePhoto fits an uploaded photo into width x height and returns a PNG.
func (s *Server) resizePhoto(c *gin.Context) {
	target, err := formSize(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo, err := s.pickPhoto(c)
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := imagepkg.ResizeToFit(photo, target)
	if err != nil {
		writeError(c, err)
		return
	}
	if c.PostForm("filter") == "noir" {
		out = imagepkg.ApplyMonochromeFilter(out, nil)
	}
	writePNG(c, out)
}

// filterPhoto returns a noir rendition of the uploaded photo.
func (s *Server) filterPhoto(c *gin.Context) {
	photo, err := s.pickPhoto(c)
	if err != nil {
		writeError(c, err)
		return
	}
	writePNG(c, imagepkg.ApplyMonochromeFilter(photo, nil))
}

// compose renders the canvas and returns it as a PNG without saving.
func (s *Server) compose(c *gin.Context) {
	req, ok := s.bindComposition(c)
	if !ok {
		return
	}
	out, err := imagepkg.Compose(req)
	if err != nil {
		writeError(c, err)
		return
	}
	writePNG(c, out)
}

// save composes the canvas and writes it to the photo library.
func (s *Server) save(c *gin.Context) {
	req, ok := s.bindComposition(c)
	if !ok {
		return
	}
	pending, err := s.exporter.Export(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	res := pending.Wait(c.Request.Context())
	if res.Err != nil {
		writeError(c, res.Err)
		return
	}
	img := pending.Image()
	c.JSON(http.StatusCreated, gin.H{
		"id":      res.ID,
		"url":     s.imageURL(res.ID),
		"width":   img.Width(),
		"height":  img.Height(),
		"title":   export.ConfirmationTitle,
		"message": export.ConfirmationMessage,
	})
}

// layout reports zoom and scrollable content size for a drawing in a view.
func (s *Server) layout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !(req.View.Width > 0) || !(req.View.Height > 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view width and height must be positive"})
		return
	}
	surface := ink.NewSurface(ink.Drawing{})
	l := canvas.NewLayout(surface, req.View)
	for _, st := range req.Strokes {
		surface.AddStroke(st)
	}
	resp := gin.H{
		"zoom":         l.Zoom(),
		"canvas_width": canvas.Width,
		"content_size": l.ContentSize(),
		"offset":       l.Offset(),
	}
	if b, ok := surface.Drawing().Bounds(); ok {
		resp["drawing_bounds"] = b
	}
	c.JSON(http.StatusOK, resp)
}

// getImage serves a saved photo.
func (s *Server) getImage(c *gin.Context) {
	photo, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// imageQR returns a PNG QR code linking to a saved photo.
func (s *Server) imageQR(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.store.Get(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	size := 256
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(s.imageURL(id), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// bindComposition decodes the body into a request. It writes the error
// response itself and reports false on failure.
func (s *Server) bindComposition(c *gin.Context) (imagepkg.CompositionRequest, bool) {
	var body composeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return imagepkg.CompositionRequest{}, false
	}
	req, err := s.compositionRequest(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return imagepkg.CompositionRequest{}, false
	}
	return req, true
}

func (s *Server) compositionRequest(ctx context.Context, body composeRequest) (imagepkg.CompositionRequest, error) {
	req := imagepkg.CompositionRequest{
		Ink:         ink.Drawing{Strokes: body.Strokes},
		CanvasSize:  body.Canvas,
		ExportScale: body.Scale,
	}
	if req.ExportScale == 0 {
		req.ExportScale = s.cfg.ExportScale
	}

	bgScale := body.BackgroundScale
	if bgScale == 0 {
		bgScale = 1
	}
	var (
		bg  *imagepkg.RasterImage
		err error
	)
	switch {
	case len(body.Background) > 0:
		bg, err = imagepkg.DecodePhoto(body.Background, bgScale)
	case body.BackgroundURL != "":
		bg, err = imagepkg.FetchPhoto(ctx, body.BackgroundURL, bgScale)
	}
	if err != nil {
		return req, fmt.Errorf("background: %w", err)
	}
	if bg == nil {
		return req, nil
	}

	if bg, err = imagepkg.ResizeToFit(bg, body.Canvas); err != nil {
		return req, fmt.Errorf("background: %w", err)
	}
	if body.Filter == "noir" {
		bg = imagepkg.ApplyMonochromeFilter(bg, nil)
	}
	req.Background = bg
	return req, nil
}

// pickPhoto reads the "photo" upload, falling back to "photo_url".
func (s *Server) pickPhoto(c *gin.Context) (*imagepkg.RasterImage, error) {
	scale := 1.0
	if v := c.PostForm("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: scale %q", imagepkg.ErrInvalidImage, v)
		}
		scale = f
	}

	fh, err := c.FormFile("photo")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return imagepkg.DecodePhoto(b, scale)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return imagepkg.FetchPhoto(c.Request.Context(), c.PostForm("photo_url"), scale)
	default:
		return nil, err
	}
}

func (s *Server) imageURL(id string) string {
	return s.cfg.BaseURL() + "/api/images/" + id
}

func formSize(c *gin.Context) (imagepkg.Size, error) {
	w, err := strconv.ParseFloat(c.PostForm("width"), 64)
	if err != nil {
		return imagepkg.Size{}, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.ParseFloat(c.PostForm("height"), 64)
	if err != nil {
		return imagepkg.Size{}, fmt.Errorf("height: %w", err)
	}
	return imagepkg.Size{Width: w, Height: h}, nil
}

func writePNG(c *gin.Context, img *imagepkg.RasterImage) {
	buf := new(bytes.Buffer)
	if err := img.Encode(buf, imaging.PNG); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// writeError maps domain errors to status codes. Success confirmations are
// never sent alongside an error.
func writeError(c *gin.Context, err error) {
	var pe *export.PersistenceError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, imagepkg.ErrPickCancelled), errors.Is(err, image.ErrFormat):
		status = http.StatusBadRequest
	case errors.Is(err, imagepkg.ErrInvalidImage):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrPhotoNotFound):
		status = http.StatusNotFound
	case errors.As(err, &pe):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
