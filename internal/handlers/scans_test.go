package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Validation failures must be rejected before any scan row would be created,
// so these tests run without a database.

func TestScanEmailValidation(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/scans/email", strings.NewReader(`{"emailContent":""}`))
		rec := httptest.NewRecorder()

		ScanEmail(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Email content is required")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/scans/email", strings.NewReader(`not json`))
		rec := httptest.NewRecorder()

		ScanEmail(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestScanURLValidation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/scans/url", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	ScanURL(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "URL is required")
}

func TestScanBreachValidation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/scans/breach", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	ScanBreach(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email is required")
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestScanFileValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("name", "no file here"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/scans/file", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()

		ScanFile(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "File is required")
	})

	t.Run("disallowed extension", func(t *testing.T) {
		body, contentType := multipartUpload(t, "tool.dll", []byte("MZ"))

		req := httptest.NewRequest(http.MethodPost, "/api/scans/file", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		ScanFile(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid file type")
	})
}

func TestAllowedFileTypes(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.pdf", "b.doc", "c.docx", "d.txt", "e.zip", "f.exe", "g.js", "h.html", "i.htm", "j.php", "UPPER.EXE"} {
		require.True(t, allowedFileTypes.MatchString(name), "expected %q to be allowed", name)
	}
	for _, name := range []string{"a.dll", "b.sh", "c.py", "noext", "d.exe.gz"} {
		require.False(t, allowedFileTypes.MatchString(name), "expected %q to be rejected", name)
	}
}
