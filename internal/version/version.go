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

// Package version reports the getfile release and the build it came from.
package version // import "getfile.sh/getfile/internal/version"

import (
	"flag"
	"runtime"
	"strings"
)

// Set at link time with -ldflags "-X getfile.sh/getfile/internal/version.<name>=...".
var (
	version   = "v0.3"
	metadata  = ""
	gitCommit = ""
)

// BuildInfo is the build description logged by getfile --debug.
type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// GetVersion returns the release, with any build metadata appended after a '+'.
func GetVersion() string {
	if metadata == "" {
		return version
	}
	return version + "+" + metadata
}

// GetUserAgent returns the User-Agent sent with downloads, e.g. "getfile/0.3".
func GetUserAgent() string {
	return "getfile/" + strings.TrimPrefix(GetVersion(), "v")
}

// Get returns build info. The Go version is left empty under go test so
// that logged output stays stable.
func Get() BuildInfo {
	info := BuildInfo{Version: GetVersion(), GitCommit: gitCommit}
	if flag.Lookup("test.v") == nil {
		info.GoVersion = runtime.Version()
	}
	return info
}
