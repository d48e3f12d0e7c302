package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"time"

	"memehub/internal/compose"
	"memehub/internal/source"
	"memehub/pkg/models"
)

// Renders a meme offline: a template image or video plus a JSON file
// of text layers, composited to a PNG. Useful for previewing layer
// files and for exercising the pipeline without a browser.
func main() {
	var (
		templateArg = flag.String("template", "", "template image/video: local path or http(s) URL")
		layersPath  = flag.String("layers", "", "JSON file containing an array of text layers")
		out         = flag.String("out", "meme.png", "output PNG path")
		grid        = flag.Bool("grid", false, "draw the 20px alignment grid")
		seek        = flag.Duration("seek", 0, "frame position for video templates")
		timeout     = flag.Duration("timeout", 60*time.Second, "load timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	surface := compose.NewSurface()
	surface.SetGrid(*grid)

	if *templateArg != "" {
		media := source.MediaKindOf(*templateArg)
		rec := models.TemplateRecord{
			ID:    "local",
			Name:  *templateArg,
			URL:   *templateArg,
			Media: media,
		}
		if err := surface.SetTemplate(ctx, rec, &localLoader{}); err != nil {
			log.Fatalf("load template: %v", err)
		}
		if media == models.MediaVideo && *seek > 0 {
			if err := surface.Seek(*seek); err != nil {
				log.Fatalf("seek: %v", err)
			}
		}
	}

	if *layersPath != "" {
		layers, err := readLayers(*layersPath)
		if err != nil {
			log.Fatalf("read layers: %v", err)
		}
		for _, l := range layers {
			added := surface.AddLayer(l.Text)
			surface.UpdateLayer(added.ID, func(dst *models.TextLayer) {
				id, z := dst.ID, dst.ZIndex
				*dst = l
				dst.ID, dst.ZIndex = id, z
			})
		}
	}

	png, err := surface.Export()
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	w, h := surface.Size()
	log.Printf("wrote %s (%dx%d, %d layers)", *out, w, h, len(surface.Layers()))
}

func readLayers(path string) ([]models.TextLayer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var layers []models.TextLayer
	if err := json.Unmarshal(b, &layers); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return layers, nil
}

// localLoader resolves local paths directly and delegates URLs to the
// HTTP loader.
type localLoader struct{}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (l *localLoader) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	if isURL(ref) {
		return compose.NewHTTPLoader().LoadImage(ctx, ref)
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

func (l *localLoader) LoadVideo(ctx context.Context, ref string) (compose.FrameSource, error) {
	if isURL(ref) {
		return compose.NewHTTPLoader().LoadVideo(ctx, ref)
	}
	return compose.OpenVideoFile(ref, false)
}
