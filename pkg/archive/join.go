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
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"
)

// cleanJoin resolves dest as a subpath of root.
//
// It rejects entries that look malicious instead of cleaning them:
//   - The character `:` is illegal, it is a separator on UNIX and a drive
//     designator on Windows.
//   - The path component `..` is illegal.
//   - The character \ (backslash) is treated as a path separator.
//   - Beginning a path with a path separator is illegal.
//   - Rudimentary symlink protection is offered by SecureJoin.
func cleanJoin(root, dest string) (string, error) {
	if strings.Contains(dest, ":") {
		return "", errors.Wrapf(ErrIllegalPath, "%s contains ':'", dest)
	}

	// The archive libraries do not convert separators for us.
	dest = strings.ReplaceAll(dest, "\\", "/")

	for _, part := range strings.Split(dest, "/") {
		if part == ".." {
			return "", errors.Wrapf(ErrIllegalPath, "%s contains '..'", dest)
		}
	}

	if path.IsAbs(dest) {
		return "", errors.Wrapf(ErrIllegalPath, "%s is absolute", dest)
	}

	return securejoin.SecureJoin(root, dest)
}

// resolveEntry joins name under root. Directory entries that name root
// itself, like "./", are reported as skip.
func resolveEntry(root, name string, dir bool) (target string, skip bool, err error) {
	target, err = cleanJoin(root, name)
	if err != nil {
		return "", false, err
	}
	if filepath.Clean(target) == filepath.Clean(root) {
		if dir {
			return "", true, nil
		}
		return "", false, errors.Wrapf(ErrIllegalPath, "%q names the target directory itself", name)
	}
	return target, false, nil
}

// sourceGuard rejects targets that would overwrite the archive being read.
type sourceGuard struct {
	path string
	info os.FileInfo
}

func newSourceGuard(source string) (*sourceGuard, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	return &sourceGuard{path: abs, info: info}, nil
}

func (g *sourceGuard) check(name, target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if abs == g.path {
		return errors.Wrapf(ErrIllegalPath, "%s would overwrite the archive itself", name)
	}
	// catches a target reaching the archive through a symlinked directory
	if fi, err := os.Stat(abs); err == nil && os.SameFile(fi, g.info) {
		return errors.Wrapf(ErrIllegalPath, "%s would overwrite the archive itself", name)
	}
	return nil
}

// writeFile copies r into target, creating missing parent directories.
// An existing file is truncated.
func writeFile(target string, r io.Reader, mode os.FileMode) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}
	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(outFile, r)
	// Close explicitly since deferring in the extract loops may leak handles.
	if cerr := outFile.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// writeLink recreates a hard link at target pointing to the already
// extracted file link, replacing whatever target held.
func writeLink(link, target string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	if err := os.Link(link, target); err != nil {
		return 0, err
	}
	fi, err := os.Stat(target)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// entryName is the report name for a validated archive member.
func entryName(name string) string {
	return path.Clean(strings.ReplaceAll(name, "\\", "/"))
}
