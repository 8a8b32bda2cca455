/*
Copyright The Getfile Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExtension(t *testing.T) {
	for _, name := range []string{"a.zip", "a.tar.gz", "a.gz", "a.bz2", "dir/a.tgz", "a.tbz", "a.tar"} {
		assert.NoError(t, CheckExtension(name), name)
	}
	for _, name := range []string{"a.txt", "a", "a.ZIP", "a.tar.xz", "a.zip.part", ""} {
		err := CheckExtension(name)
		assert.True(t, errors.Is(err, ErrInvalidExtension), "%q: %v", name, err)
	}
	assert.EqualError(t, CheckExtension("/tmp/notes.txt"),
		"notes.txt: extension must be one of .zip, .gz, .bz2, .tgz, .tbz, .tar: invalid archive extension")
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		format Format
	}{
		{"zip", writeZip(t, filepath.Join(dir, "sample.zip"), sampleFiles), Zip},
		{"tar", writeBytes(t, filepath.Join(dir, "sample.tar"), tarBytes(t, sampleFiles)), Tar},
		{"tgz", writeBytes(t, filepath.Join(dir, "sample.tgz"), gzipBytes(t, tarBytes(t, sampleFiles))), Tar},
		{"tbz", writeBytes(t, filepath.Join(dir, "sample.tbz"), decodeB64(t, sampleTbzB64)), Tar},
		// the content decides, not the suffix
		{"zip named tar", writeZip(t, filepath.Join(dir, "really-zip.tar"), sampleFiles), Zip},
		{"tar named zip", writeBytes(t, filepath.Join(dir, "really-tar.zip"), tarBytes(t, sampleFiles)), Tar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got)
		})
	}
}

func TestDetectIncompatible(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"junk", writeBytes(t, filepath.Join(dir, "junk.zip"), []byte("this is not an archive at all"))},
		{"empty", writeBytes(t, filepath.Join(dir, "empty.tar"), nil)},
		{"zero blocks", writeBytes(t, filepath.Join(dir, "zeros.tar"), make([]byte, 1024))},
		{"plain gzip", writeBytes(t, filepath.Join(dir, "notes.gz"), gzipBytes(t, []byte("sample data")))},
		{"plain bzip2", writeBytes(t, filepath.Join(dir, "notes.bz2"), decodeB64(t, plainBz2B64))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := Detect(tt.path)
			assert.Equal(t, Unknown, format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompatibleFormat), "unexpected error: %v", err)

			var ferr *FormatError
			require.True(t, errors.As(err, &ferr))
			assert.Len(t, ferr.Probes.Errors, 2)
			assert.Contains(t, err.Error(), "not a zip archive")
			assert.Contains(t, err.Error(), "not a tar archive")
		})
	}
}

func TestDetectMissing(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "gone.zip"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)) || errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrIncompatibleFormat))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "zip", Zip.String())
	assert.Equal(t, "tar", Tar.String())
	assert.Equal(t, "unknown", Unknown.String())

	text, err := Tar.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tar", string(text))

	var f Format
	require.NoError(t, f.UnmarshalText([]byte("zip")))
	assert.Equal(t, Zip, f)
	assert.Error(t, f.UnmarshalText([]byte("rar")))
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor(Zip)
	require.NoError(t, err)
	assert.IsType(t, &ZipExtractor{}, e)

	e, err = NewExtractor(Tar)
	require.NoError(t, err)
	assert.IsType(t, &TarExtractor{}, e)

	_, err = NewExtractor(Unknown)
	assert.EqualError(t, err, "no extractor implemented for unknown archives")
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		create func(t *testing.T, path string)
		format Format
	}{
		{"zip", "sample.zip", func(t *testing.T, p string) { writeZip(t, p, sampleFiles) }, Zip},
		{"tar", "sample.tar", func(t *testing.T, p string) { writeBytes(t, p, tarBytes(t, sampleFiles)) }, Tar},
		{"tgz", "sample.tgz", func(t *testing.T, p string) { writeBytes(t, p, gzipBytes(t, tarBytes(t, sampleFiles))) }, Tar},
		{"tbz", "sample.tbz", func(t *testing.T, p string) { writeBytes(t, p, decodeB64(t, sampleTbzB64)) }, Tar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			source := filepath.Join(dir, tt.file)
			tt.create(t, source)

			format, entries, err := Extract(source, dir)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, []Entry{{Name: "sample.txt", Size: 11}}, entries)
			assertFileContent(t, filepath.Join(dir, "sample.txt"), "sample data")
		})
	}
}
