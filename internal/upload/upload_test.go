package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("photo.png"))
	assert.True(t, Allowed("photo.PNG"))
	assert.True(t, Allowed("photo.JpEg"))
	assert.True(t, Allowed("photo.webp"))
	assert.True(t, Allowed("photo.gif"))
	assert.False(t, Allowed("photo.exe"))
	assert.False(t, Allowed("photo.png.exe"))
	assert.False(t, Allowed("photo"))
	assert.False(t, Allowed(""))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "photo.png", Sanitize("photo.png"))
	assert.Equal(t, "my_photo.png", Sanitize("my photo.png"))
	assert.Equal(t, "evil.png", Sanitize("../../evil.png"))
	assert.Equal(t, "evil.png", Sanitize(`..\..\evil.png`))
	assert.Equal(t, "photo.png", Sanitize("ph<>o|to.png"))
	assert.Equal(t, "", Sanitize("..."))
}

func TestSaveStoresFile(t *testing.T) {
	dir := t.TempDir()
	file, header := formFile(t, "toy.png", []byte("png-bytes"))

	stored, err := Save(file, header, dir)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}_toy\.png$`), stored)

	data, err := os.ReadFile(filepath.Join(dir, stored))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	file, header := formFile(t, "toy.PNG", []byte("png-bytes"))

	stored, err := Save(file, header, dir)
	require.NoError(t, err)
	assert.Contains(t, stored, "_toy.PNG")
}

func TestSaveRejectsBadExtension(t *testing.T) {
	dir := t.TempDir()
	file, header := formFile(t, "malware.exe", []byte("mz"))

	_, err := Save(file, header, dir)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// Nothing written on validation failure.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveNoFile(t *testing.T) {
	_, err := Save(nil, nil, t.TempDir())
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = Save(nil, &multipart.FileHeader{Filename: ""}, t.TempDir())
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestSaveIdenticalNamesGetDistinctFiles(t *testing.T) {
	dir := t.TempDir()

	file1, header1 := formFile(t, "leash.jpg", []byte("first"))
	stored1, err := Save(file1, header1, dir)
	require.NoError(t, err)

	file2, header2 := formFile(t, "leash.jpg", []byte("second"))
	stored2, err := Save(file2, header2, dir)
	require.NoError(t, err)

	assert.NotEqual(t, stored1, stored2)

	data1, err := os.ReadFile(filepath.Join(dir, stored1))
	require.NoError(t, err)
	data2, err := os.ReadFile(filepath.Join(dir, stored2))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data1)
	assert.Equal(t, []byte("second"), data2)
}
