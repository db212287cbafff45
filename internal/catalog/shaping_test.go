package catalog

import "testing"

func TestShapeVolumes(t *testing.T) {
	jsonIn := []byte(`{"totalItems":3,"items":[{"id":"a","volumeInfo":{"title":"A","authors":["X","Y"],"imageLinks":{"thumbnail":"http://t/a"}}},{"id":"b","volumeInfo":{"title":"B"}}]}`)
	rs, err := ShapeVolumes(jsonIn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Total != 3 {
		t.Errorf("total = %d, want 3", rs.Total)
	}
	if rs.Len() != 2 {
		t.Fatalf("got %d books, want 2", rs.Len())
	}
	if rs.Books[0].ID != "a" || rs.Books[1].ID != "b" {
		t.Errorf("order not preserved: %+v", rs.Books)
	}
	if got := rs.Books[0].FullAuthors(); got != "X, Y" {
		t.Errorf("FullAuthors() = %q", got)
	}
	if rs.Books[0].Thumbnail != "http://t/a" || rs.Books[1].Thumbnail != "" {
		t.Errorf("unexpected thumbnails: %+v", rs.Books)
	}
}

func TestShapeVolumesNoItems(t *testing.T) {
	rs, err := ShapeVolumes([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rs.Empty() || rs.Books == nil {
		t.Errorf("expected empty non-nil books, got %#v", rs.Books)
	}
}

func TestShapeVolumesBadJSON(t *testing.T) {
	if _, err := ShapeVolumes([]byte(`{"items":`)); err == nil {
		t.Fatal("expected decode error")
	}
}
