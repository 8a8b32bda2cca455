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

/*
Package archive recognizes and unpacks the archive formats getfile can expand.

A file is first gated on its extension, then its content is sniffed by an
ordered chain of probes (zip before tar). The first probe that accepts the
file selects the Extractor.
*/
package archive // import "getfile.sh/getfile/pkg/archive"

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidExtension is returned for files whose suffix is not an archive suffix.
	ErrInvalidExtension = errors.New("invalid archive extension")
	// ErrIncompatibleFormat is returned when no probe recognizes the content.
	ErrIncompatibleFormat = errors.New("incompatible archive format")
	// ErrIllegalPath is returned when an entry would be written outside the target directory.
	ErrIllegalPath = errors.New("illegal entry path")
)

// Extensions lists the suffixes accepted before the content is inspected.
var Extensions = []string{".zip", ".gz", ".bz2", ".tgz", ".tbz", ".tar"}

// Format identifies the container format of an archive.
type Format int

const (
	// Unknown is the zero Format.
	Unknown Format = iota
	// Zip is a PKZIP archive.
	Zip
	// Tar is a POSIX tar archive, optionally gzip or bzip2 compressed.
	Tar
)

func (f Format) String() string {
	switch f {
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	default:
		return "unknown"
	}
}

// MarshalText renders the format by name in json and yaml reports.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a format name written by MarshalText.
func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "zip":
		*f = Zip
	case "tar":
		*f = Tar
	case "unknown", "":
		*f = Unknown
	default:
		return errors.Errorf("unknown archive format %q", text)
	}
	return nil
}

// Entry describes one extracted archive member.
type Entry struct {
	// Name is the slash separated path relative to the target directory.
	Name string `json:"name"`
	Size int64  `json:"size"`
	Dir  bool   `json:"dir,omitempty"`
}

// FormatError reports that every probe rejected a file.
type FormatError struct {
	Path string
	// Probes holds the reason each probe gave.
	Probes *multierror.Error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", filepath.Base(e.Path), ErrIncompatibleFormat, e.Probes.Error())
}

// Is lets errors.Is match ErrIncompatibleFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrIncompatibleFormat
}

// Unwrap exposes the individual probe failures.
func (e *FormatError) Unwrap() error {
	return e.Probes
}

// CheckExtension accepts name only if it ends with one of Extensions.
func CheckExtension(name string) error {
	if slices.Contains(Extensions, filepath.Ext(name)) {
		return nil
	}
	return errors.Wrapf(ErrInvalidExtension, "%s: extension must be one of %s", filepath.Base(name), strings.Join(Extensions, ", "))
}

type probe struct {
	format Format
	detect func(path string) error
}

// probes run in priority order.
var probes = []probe{
	{Zip, probeZip},
	{Tar, probeTar},
}

func joinProbeErrors(es []error) string {
	points := make([]string, len(es))
	for i, err := range es {
		points[i] = err.Error()
	}
	return strings.Join(points, "; ")
}

// Detect sniffs the content of path and returns its Format. A file that no
// probe accepts yields a *FormatError; a file that cannot be read at all
// yields the underlying error.
func Detect(path string) (Format, error) {
	var result *multierror.Error
	for _, p := range probes {
		err := p.detect(path)
		if err == nil {
			return p.format, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Unknown, err
		}
		result = multierror.Append(result, errors.Wrapf(err, "not a %s archive", p.format))
	}
	result.ErrorFormat = joinProbeErrors
	return Unknown, &FormatError{Path: path, Probes: result}
}

// Extractor unpacks an archive file into a directory.
type Extractor interface {
	Extract(source, targetDir string) ([]Entry, error)
}

var extractors = map[Format]Extractor{
	Zip: &ZipExtractor{},
	Tar: &TarExtractor{},
}

// NewExtractor returns the Extractor for format.
func NewExtractor(format Format) (Extractor, error) {
	if e, ok := extractors[format]; ok {
		return e, nil
	}
	return nil, errors.Errorf("no extractor implemented for %s archives", format)
}

// Extract detects the format of source and unpacks it into targetDir.
func Extract(source, targetDir string) (Format, []Entry, error) {
	format, err := Detect(source)
	if err != nil {
		return Unknown, nil, err
	}
	e, err := NewExtractor(format)
	if err != nil {
		return format, nil, err
	}
	entries, err := e.Extract(source, targetDir)
	return format, entries, err
}
