package view

import (
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

type coverParams struct {
	ID    string `url:"id"`
	Index int    `url:"index"`
	Size  string `url:"size"`
}

// ResolveImage returns the best cover image URL for a record, or nil when
// there is none. Relative image paths are resolved against origin.
func ResolveImage(rec *finna.Record, origin string) *string {
	if rec == nil {
		return nil
	}
	origin = strings.TrimRight(origin, "/")

	for _, source := range []finna.Strings{rec.Images, rec.ImageURLs} {
		if src := firstImage(source); src != "" {
			if isAbsolute(src) {
				return &src
			}
			if !strings.HasPrefix(src, "/") {
				src = "/" + src
			}
			resolved := origin + src
			return &resolved
		}
	}

	if rec.ID != "" {
		values, err := query.Values(coverParams{ID: string(rec.ID), Index: 0, Size: "large"})
		if err != nil {
			return nil
		}
		cover := origin + "/Cover/Show?" + values.Encode()
		return &cover
	}
	return nil
}

func firstImage(images finna.Strings) string {
	for _, img := range images {
		if s := strings.TrimSpace(img); s != "" {
			return s
		}
	}
	return ""
}

func isAbsolute(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
