package client

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// filenamePattern extracts the filename parameter from a Content-Disposition
// header. Quoted and bare values are both matched; quote characters are
// stripped afterwards.
var filenamePattern = regexp.MustCompile(`filename[^;=\n]*=('.*?'|".*?"|[^;\n]*)`)

// File is a downloaded attachment. Content must be closed by the caller
// unless the file is consumed through Save.
type File struct {
	// Name is the filename derived from the Content-Disposition header, or
	// the fallback name supplied to DownloadFile.
	Name string

	// Content streams the response body.
	Content io.ReadCloser
}

// Save writes the file into dir under its Name and closes Content.
// Returns the path of the written file. Name is reduced to its base so a
// hostile header cannot escape the target directory.
func (f *File) Save(dir string) (string, error) {
	defer f.Content.Close()

	name := filepath.Base(f.Name)
	if name == "." || name == string(filepath.Separator) {
		name = "download"
	}
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, f.Content); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	return path, nil
}

// DownloadFile performs an authenticated binary fetch of urlPath. The
// returned File carries the server-suggested filename when the response has a
// Content-Disposition header, otherwise fallbackName.
func (c *Client) DownloadFile(ctx context.Context, urlPath, fallbackName string) (*File, error) {
	resp, err := c.do(ctx, http.MethodGet, urlPath, nil, "application/octet-stream")
	if err != nil {
		return nil, err
	}

	return &File{
		Name:    filenameFromHeader(resp.Header.Get("Content-Disposition"), fallbackName),
		Content: resp.Body,
	}, nil
}

// filenameFromHeader extracts a filename from a Content-Disposition header
// value, falling back to fallback when the header is absent or carries no
// usable name.
func filenameFromHeader(header, fallback string) string {
	if header == "" {
		return fallback
	}

	match := filenamePattern.FindStringSubmatch(header)
	if match == nil {
		return fallback
	}

	name := strings.Trim(strings.NewReplacer(`"`, "", "'", "").Replace(match[1]), " ")
	if name == "" {
		return fallback
	}
	return name
}
