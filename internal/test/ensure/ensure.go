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

package ensure

import (
	"os"
	"strings"
	"testing"
)

// EnvPrefix is the prefix shared by every variable read by pkg/cli.
const EnvPrefix = "GETFILE_"

// CleanEnv unsets every GETFILE_* variable for the duration of the test so
// that settings start from their defaults regardless of the caller's shell.
func CleanEnv(t *testing.T) {
	t.Helper()
	for _, pair := range os.Environ() {
		name, _, _ := strings.Cut(pair, "=")
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		// t.Setenv registers the restore, Unsetenv clears it for this test.
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// TempFile writes data into name inside dir and returns the full path.
func TempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := dir + string(os.PathSeparator) + name
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
