package tours

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/filemgr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPart struct {
	name        string
	contentType string
	data        []byte
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func buildImageForm(t *testing.T, parts []formPart) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+p.name+`"`)
		h.Set("Content-Type", p.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}

func storedImageCount(t *testing.T, baseDir string) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(baseDir, "tourpic"))
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

func TestSaveImages(t *testing.T) {
	dir := t.TempDir()
	files, err := filemgr.New(dir)
	require.NoError(t, err)

	headers := buildImageForm(t, []formPart{
		{"one.png", "image/png", pngBytes(t)},
		{"two.png", "image/png", pngBytes(t)},
	})

	urls, err := saveImages(files, headers, "tour123")
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Equal(t, 2, storedImageCount(t, dir))
	for _, u := range urls {
		assert.Contains(t, u, "/static/tourpic/tour123-")
	}
}

func TestSaveImagesCleansUpOnDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	files, err := filemgr.New(dir)
	require.NoError(t, err)

	// first file is fine, second claims to be a PNG but is not
	headers := buildImageForm(t, []formPart{
		{"one.png", "image/png", pngBytes(t)},
		{"two.png", "image/png", []byte("not an image")},
	})

	_, err = saveImages(files, headers, "tour123")
	require.Error(t, err)
	assert.Equal(t, 0, storedImageCount(t, dir), "a rejected batch must leave no files behind")
}

func TestSaveImagesCleansUpOnUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	files, err := filemgr.New(dir)
	require.NoError(t, err)

	headers := buildImageForm(t, []formPart{
		{"one.png", "image/png", pngBytes(t)},
		{"notes.txt", "text/plain", []byte("itinerary notes")},
	})

	_, err = saveImages(files, headers, "tour123")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, 0, storedImageCount(t, dir))
}
