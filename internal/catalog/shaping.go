package catalog

import (
	"encoding/json"
	"fmt"

	"bookfind/internal/search"
)

// --- Volumes shaping ---
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		ImageLinks  struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type volumesResp struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// ShapeVolumes flattens a volumes response into a ResultSet.
// A response without items is an empty result, not an error.
func ShapeVolumes(data []byte) (search.ResultSet, error) {
	var r volumesResp
	if err := json.Unmarshal(data, &r); err != nil {
		return search.ResultSet{}, fmt.Errorf("decode volumes: %w", err)
	}

	out := search.ResultSet{
		Total: r.TotalItems,
		Books: make([]search.BookRecord, 0, len(r.Items)), // ensure [] not nil
	}
	for _, v := range r.Items {
		out.Books = append(out.Books, search.BookRecord{
			ID:          v.ID,
			Title:       v.VolumeInfo.Title,
			Authors:     v.VolumeInfo.Authors,
			Description: v.VolumeInfo.Description,
			Thumbnail:   v.VolumeInfo.ImageLinks.Thumbnail,
		})
	}
	return out, nil
}
