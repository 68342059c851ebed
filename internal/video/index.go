package video

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// maxIndexName is the longest index name the provider accepts
const maxIndexName = 63

var (
	slugInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// IndexName derives a deterministic index name from a video URL.
// The name is a host+path slug plus the first 8 hex digits of sha1(url),
// capped at 63 characters by shortening the slug.
func IndexName(rawURL string) string {
	base := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		base = parsed.Host + parsed.Path
	}

	slug := slugInvalid.ReplaceAllString(base, "-")
	slug = strings.ToLower(strings.Trim(slug, "-"))
	slug = slugDashes.ReplaceAllString(slug, "-")
	if slug == "" {
		slug = "video"
	}

	sum := sha1.Sum([]byte(rawURL))
	hash := hex.EncodeToString(sum[:])[:8]

	name := slug + "-" + hash
	if len(name) > maxIndexName {
		name = slug[:maxIndexName-1-len(hash)] + "-" + hash
	}
	return name
}

type indexModel struct {
	ModelName    string   `json:"model_name"`
	ModelOptions []string `json:"model_options"`
}

type indexInfo struct {
	ID        string `json:"_id"`
	IndexName string `json:"index_name"`
}

type listIndexesResponse struct {
	Data []indexInfo `json:"data"`
}

type createIndexRequest struct {
	IndexName string       `json:"index_name"`
	Models    []indexModel `json:"models"`
}

// EnsureIndex returns the ID of the index called name, creating it if absent
func (c *Client) EnsureIndex(ctx context.Context, name string) (string, error) {
	var list listIndexesResponse
	path := "/indexes?index_name=" + url.QueryEscape(name)
	if err := c.doJSON(ctx, "list indexes", http.MethodGet, path, nil, &list); err != nil {
		return "", err
	}
	for _, idx := range list.Data {
		if idx.IndexName == name && idx.ID != "" {
			return idx.ID, nil
		}
	}

	req := createIndexRequest{
		IndexName: name,
		Models: []indexModel{{
			ModelName:    c.config.ModelName,
			ModelOptions: c.config.ModelOptions,
		}},
	}
	var created indexInfo
	if err := c.doJSON(ctx, "create index", http.MethodPost, "/indexes", req, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("create index: response carried no index id")
	}

	c.log.Info("created index", slog.String("name", name), slog.String("id", created.ID))
	return created.ID, nil
}
