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
	"archive/zip"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

// openZip tolerates zip.ErrInsecurePath; member names are checked by
// resolveEntry instead.
func openZip(path string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil && err != zip.ErrInsecurePath {
		return nil, err
	}
	return r, nil
}

func probeZip(path string) error {
	r, err := openZip(path)
	if err != nil {
		return err
	}
	return r.Close()
}

// ZipExtractor extracts PKZIP archives.
type ZipExtractor struct{}

// Extract unpacks every member of the zip archive at source into targetDir.
// All member names are validated before anything is written.
//
// Implements Extractor.
func (z *ZipExtractor) Extract(source, targetDir string) ([]Entry, error) {
	r, err := openZip(source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	type planned struct {
		target string
		skip   bool
	}
	guard, err := newSourceGuard(source)
	if err != nil {
		return nil, err
	}
	plan := make([]planned, len(r.File))
	for i, f := range r.File {
		mode := f.Mode()
		if !mode.IsRegular() && !mode.IsDir() {
			return nil, errors.Errorf("unsupported type %q for %s", mode.Type(), f.Name)
		}
		target, skip, err := resolveEntry(targetDir, f.Name, mode.IsDir())
		if err != nil {
			return nil, err
		}
		if !skip {
			if err := guard.check(f.Name, target); err != nil {
				return nil, err
			}
		}
		plan[i] = planned{target, skip}
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(r.File))
	for i, f := range r.File {
		if plan[i].skip {
			continue
		}
		if f.Mode().IsDir() {
			if err := os.MkdirAll(plan[i].target, 0755); err != nil {
				return entries, err
			}
			entries = append(entries, Entry{Name: entryName(f.Name), Dir: true})
			continue
		}

		n, err := extractZipFile(f, plan[i].target)
		if err != nil {
			return entries, errors.Wrapf(err, "extracting %s", f.Name)
		}
		entries = append(entries, Entry{Name: entryName(f.Name), Size: n})
	}
	return entries, nil
}

func extractZipFile(f *zip.File, target string) (int64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return writeFile(target, rc, f.Mode()&fs.ModePerm)
}
