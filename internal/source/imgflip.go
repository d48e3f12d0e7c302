package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"memehub/pkg/models"
)

const imgflipBase = "https://api.imgflip.com"

// Imgflip fetches the primary template catalog (imgflip get_memes).
type Imgflip struct {
	BaseURL string
	Client  *http.Client
}

func NewImgflip() *Imgflip {
	base := imgflipBase
	if v := os.Getenv("MEMEHUB_IMGFLIP_URL"); v != "" {
		base = v // local mirror for offline development
	}
	return &Imgflip{
		BaseURL: base,
		Client:  &http.Client{Timeout: 8 * time.Second},
	}
}

func (s *Imgflip) Name() string { return "imgflip" }

type imgflipResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Memes []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			URL      string `json:"url"`
			Width    int    `json:"width"`
			Height   int    `json:"height"`
			BoxCount int    `json:"box_count"`
		} `json:"memes"`
	} `json:"data"`
}

// Fetch returns the catalog in API order. Popularity is derived from
// list position (the API returns templates ranked by use) with a floor
// of 10 so late entries still rank above zero.
func (s *Imgflip) Fetch(ctx context.Context) ([]models.TemplateRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/get_memes", nil)
	if err != nil {
		return nil, fmt.Errorf("imgflip: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "memehub/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imgflip: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("imgflip: status %d: %s", resp.StatusCode, string(body))
	}

	var parsed imgflipResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("imgflip: decode: %w", err)
	}
	if !parsed.Success || len(parsed.Data.Memes) == 0 {
		return nil, fmt.Errorf("imgflip: empty or unsuccessful response")
	}

	out := make([]models.TemplateRecord, 0, len(parsed.Data.Memes))
	for i, m := range parsed.Data.Memes {
		if m.ID == "" || m.URL == "" || m.Name == "" {
			continue
		}
		pop := 100 - i
		if pop < 10 {
			pop = 10
		}
		out = append(out, models.TemplateRecord{
			ID:         m.ID,
			Name:       m.Name,
			URL:        m.URL,
			Tags:       []string{slugify(m.Name)},
			Popularity: pop,
			Source:     models.SourceImgflip,
			Media:      models.MediaImage,
			Width:      m.Width,
			Height:     m.Height,
			BoxCount:   m.BoxCount,
		})
	}
	return out, nil
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
