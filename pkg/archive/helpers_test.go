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
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

// tar.bz2 holding sample.txt ("sample data"); the standard library has no bzip2 writer.
var sampleTbzB64 = "QlpoOTFBWSZTWXgYbTMAAHZ7gMqAAIBAAW2AAQBmBl5ACAggAFQlEhoPU0AHqbUEkiBpo9QyAH3ciCEG1iEIn0+A85XoEMDG48RRYRSCEt9c2s4ms5Gzi9t4Ocjix7WLWrFNERA/F3JFOFCQeBhtMw=="

// bzip2 of "sample data" without a tar container.
var plainBz2B64 = "QlpoOTFBWSZTWdIYP8MAAASRgEAAJgZMACAAIgGm1CDJiMYt4ZUeLuSKcKEhpDB/hg=="

type testFile struct {
	Name, Body string
	Dir        bool
}

var sampleFiles = []testFile{{Name: "sample.txt", Body: "sample data"}}

func writeZip(t *testing.T, path string, files []testFile) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range files {
		if file.Dir {
			if _, err := zw.Create(file.Name); err != nil {
				t.Fatal(err)
			}
			continue
		}
		fh := &zip.FileHeader{Name: file.Name, Method: zip.Deflate}
		fh.SetMode(0644)
		w, err := zw.CreateHeader(fh)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(file.Body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func tarBytes(t *testing.T, files []testFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, file := range files {
		hdr := &tar.Header{
			Name:     file.Name,
			Typeflag: tar.TypeReg,
			Mode:     0600,
			Size:     int64(len(file.Body)),
		}
		if file.Dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(file.Body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeB64(t *testing.T, s string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("Could not decode fixture: %s", err)
	}
	return b
}

func writeBytes(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Expected %s to exist but doesn't", path)
		}
		t.Fatal(err)
	}
	if string(got) != expected {
		t.Errorf("Expected %s to contain %q, got %q", path, expected, string(got))
	}
}

func assertDirEntries(t *testing.T, dir string, expected int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != expected {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("Expected %d entries in %s, got %v", expected, filepath.Base(dir), names)
	}
}
