package document

import (
	"net/url"
	"regexp"
	"strings"
)

var googleDocPath = regexp.MustCompile(`^/(document|spreadsheets|presentation|file)/d/([A-Za-z0-9_-]+)`)

// DownloadURL rewrites links to known document hosts into direct export or
// download links. Anything unrecognized is returned unchanged.
func DownloadURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return link
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch host {
	case "docs.google.com":
		m := googleDocPath.FindStringSubmatch(u.Path)
		if m == nil {
			return link
		}
		switch m[1] {
		case "document":
			return "https://docs.google.com/document/d/" + m[2] + "/export?format=pdf"
		case "spreadsheets":
			return "https://docs.google.com/spreadsheets/d/" + m[2] + "/export?format=xlsx"
		case "presentation":
			return "https://docs.google.com/presentation/d/" + m[2] + "/export/pdf"
		}
	case "drive.google.com":
		id := u.Query().Get("id")
		if m := googleDocPath.FindStringSubmatch(u.Path); m != nil && m[1] == "file" {
			id = m[2]
		}
		if id == "" {
			return link
		}
		return "https://drive.google.com/uc?export=download&id=" + id
	case "dropbox.com":
		q := u.Query()
		q.Del("raw")
		q.Set("dl", "1")
		u.RawQuery = q.Encode()
		return u.String()
	}
	return link
}
