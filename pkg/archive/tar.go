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
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"

	"github.com/pkg/errors"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

// tarStream is a tar reader over a possibly compressed file.
type tarStream struct {
	*tar.Reader
	closers []io.Closer
}

func (s *tarStream) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// openTar opens path as a tar stream, unwrapping gzip or bzip2 compression
// when the content starts with the matching magic bytes.
func openTar(path string) (*tarStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &tarStream{closers: []io.Closer{f}}

	br := bufio.NewReader(f)
	// a short file yields fewer bytes and an error that does not matter here
	magic, _ := br.Peek(len(bzip2Magic))

	var r io.Reader = br
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, zr)
		r = zr
	case bytes.HasPrefix(magic, bzip2Magic):
		r = bzip2.NewReader(br)
	}

	s.Reader = tar.NewReader(r)
	return s, nil
}

func probeTar(path string) error {
	s, err := openTar(path)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Next()
	switch err {
	case nil, tar.ErrInsecurePath:
		return nil
	case io.EOF:
		return errors.New("no entries found")
	default:
		return err
	}
}

// TarExtractor extracts tar archives, plain or gzip/bzip2 compressed.
type TarExtractor struct{}

type tarPlan struct {
	target string
	skip   bool
	// link is the extracted file a hard link entry points to.
	link string
}

// Extract unpacks every member of the tar archive at source into targetDir.
// The archive is read twice: once to validate every member and once to
// write them, so a rejected archive leaves targetDir untouched.
//
// Implements Extractor.
func (t *TarExtractor) Extract(source, targetDir string) ([]Entry, error) {
	plan, err := planTar(source, targetDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, err
	}

	s, err := openTar(source)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	entries := make([]Entry, 0, len(plan))
	for i := 0; ; i++ {
		header, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil && err != tar.ErrInsecurePath {
			return entries, err
		}
		if i >= len(plan) {
			return entries, errors.Errorf("%s changed while extracting", source)
		}
		if plan[i].skip {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(plan[i].target, 0755); err != nil {
				return entries, err
			}
			entries = append(entries, Entry{Name: entryName(header.Name), Dir: true})
		case tar.TypeReg:
			n, err := writeFile(plan[i].target, s, header.FileInfo().Mode())
			if err != nil {
				return entries, errors.Wrapf(err, "extracting %s", header.Name)
			}
			entries = append(entries, Entry{Name: entryName(header.Name), Size: n})
		case tar.TypeLink:
			n, err := writeLink(plan[i].link, plan[i].target)
			if err != nil {
				return entries, errors.Wrapf(err, "linking %s", header.Name)
			}
			entries = append(entries, Entry{Name: entryName(header.Name), Size: n})
		}
	}
	return entries, nil
}

// planTar walks the archive headers and resolves a target for each member.
func planTar(source, targetDir string) ([]tarPlan, error) {
	s, err := openTar(source)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	guard, err := newSourceGuard(source)
	if err != nil {
		return nil, err
	}

	var plan []tarPlan
	// regular files planned so far, the only valid hard link targets
	files := map[string]bool{}
	for {
		header, err := s.Next()
		if err == io.EOF {
			break
		}
		if err == tar.ErrInsecurePath {
			return nil, errors.Wrapf(ErrIllegalPath, "%s is not a local path", header.Name)
		}
		if err != nil {
			return nil, err
		}

		switch header.Typeflag {
		case tar.TypeDir, tar.TypeReg:
			target, skip, err := resolveEntry(targetDir, header.Name, header.Typeflag == tar.TypeDir)
			if err != nil {
				return nil, err
			}
			if !skip {
				if err := guard.check(header.Name, target); err != nil {
					return nil, err
				}
			}
			if header.Typeflag == tar.TypeReg {
				files[target] = true
			}
			plan = append(plan, tarPlan{target: target, skip: skip})
		case tar.TypeLink:
			target, _, err := resolveEntry(targetDir, header.Name, false)
			if err != nil {
				return nil, err
			}
			if err := guard.check(header.Name, target); err != nil {
				return nil, err
			}
			link, err := cleanJoin(targetDir, header.Linkname)
			if err != nil {
				return nil, err
			}
			if !files[link] || link == target {
				return nil, errors.Wrapf(ErrIllegalPath, "hard link %s points to %s, which is not an earlier file in the archive", header.Name, header.Linkname)
			}
			files[target] = true
			plan = append(plan, tarPlan{target: target, link: link})
		case tar.TypeXGlobalHeader:
			plan = append(plan, tarPlan{skip: true})
		default:
			return nil, errors.Errorf("unknown type: %q in %s", header.Typeflag, header.Name)
		}
	}
	return plan, nil
}
