package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"google doc", "https://docs.google.com/document/d/abc_123/edit?usp=sharing", "https://docs.google.com/document/d/abc_123/export?format=pdf"},
		{"google sheet", "https://docs.google.com/spreadsheets/d/S-1/edit#gid=0", "https://docs.google.com/spreadsheets/d/S-1/export?format=xlsx"},
		{"google slides", "https://docs.google.com/presentation/d/P1/view", "https://docs.google.com/presentation/d/P1/export/pdf"},
		{"drive file", "https://drive.google.com/file/d/F9/view?usp=drive_link", "https://drive.google.com/uc?export=download&id=F9"},
		{"drive open", "https://drive.google.com/open?id=F10", "https://drive.google.com/uc?export=download&id=F10"},
		{"dropbox", "https://www.dropbox.com/s/x1/contract.pdf?dl=0", "https://www.dropbox.com/s/x1/contract.pdf?dl=1"},
		{"unknown host", "https://example.com/menu.pdf", "https://example.com/menu.pdf"},
		{"google form untouched", "https://docs.google.com/forms/d/F/viewform", "https://docs.google.com/forms/d/F/viewform"},
		{"not a url", "seating chart", "seating chart"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DownloadURL(tc.in))
		})
	}
}
