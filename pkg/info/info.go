/*
Copyright 2017 The Fission Authors.

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

package info

import (
	"encoding/json"
	"net/http"
)

// Set with -ldflags "-X github.com/fission/greeter/pkg/info.Version=..." at build time.
var (
	GitCommit string // $(git rev-parse HEAD) (1b4716ab84903b2e477135a3dc5afdb07f685cb7)
	BuildDate string // $(date -u +'%Y-%m-%dT%H:%M:%SZ') (2018-03-08T18:54:38Z)
	Version   string // greeter release version (0.1.0)
)

type BuildMeta struct {
	GitCommit string `json:"GitCommit,omitempty"`
	BuildDate string `json:"BuildDate,omitempty"`
	Version   string `json:"Version,omitempty"`
}

func BuildInfo() BuildMeta {
	return BuildMeta{
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		Version:   Version,
	}
}

func (info BuildMeta) String() string {
	v, _ := json.Marshal(info)
	return string(v)
}

// UserAgent identifies outgoing requests, e.g. greeter/0.1.0.
func UserAgent() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return "greeter/" + v
}

// VersionHandler writes the build metadata as JSON.
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(BuildInfo().String()))
}
