package printspec

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"vs Rúcula", "vs-rucula"},
		{"O que são Microverdes?", "o-que-sao-microverdes"},
		{"Girassol", "girassol"},
		{"  --Espinafre--  ", "espinafre"},
		{"Açaí & Maçã", "acai-maca"},
		{"🌻", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	spec := MustParse("96x336mm@300dpi+3mm")
	got := Filename("sleeve", "Girassol", spec)
	if want := "sleeve-girassol-96x336mm-300dpi.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	got = Filename("panel", "", MustParse("90x35mm@600"))
	if want := "panel-90x35mm-600dpi.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestSlideFilename(t *testing.T) {
	if got := SlideFilename(3, "vs Rúcula"); got != "slide-3-vs-rucula.png" {
		t.Errorf("SlideFilename() = %q", got)
	}
	if got := SlideFilename(1, ""); got != "slide-1.png" {
		t.Errorf("SlideFilename() = %q", got)
	}
}
