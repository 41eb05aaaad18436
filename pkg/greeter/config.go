/*
Copyright 2026 The Fission Authors.

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

package greeter

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	ferror "github.com/fission/greeter/pkg/error"
	"github.com/fission/greeter/pkg/utils"
)

const (
	// EnvTag is the variable the deployment tooling sets to the image tag.
	EnvTag = "SF_TAG"
	// EnvPlatformTag is the variable some platforms inject instead of SF_TAG.
	EnvPlatformTag = "TAG"

	DefaultTag         = "latest"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 3000
	DefaultAllowOrigin = "*"
)

type Config struct {
	Host string
	Port int

	// Tag is echoed back as the greeting version. Fixed for the lifetime of
	// the process.
	Tag string

	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin string

	// H2C serves HTTP/2 over cleartext next to HTTP/1.1.
	H2C bool
}

func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Tag:         DefaultTag,
		AllowOrigin: DefaultAllowOrigin,
	}
}

// LookupTag resolves the tag from SF_TAG, then TAG, then DefaultTag. Blank
// values count as unset.
func LookupTag(lookup func(string) (string, bool)) string {
	for _, key := range []string{EnvTag, EnvPlatformTag} {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return DefaultTag
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return ferror.MakeError(ferror.ErrorInvalidArgument, fmt.Sprintf("error loading env file %q: %v", path, err))
	}
	return nil
}

// Complete fills the tag from the environment when no flag set it, then
// fills every remaining zero field from DefaultConfig.
func (c *Config) Complete(lookup func(string) (string, bool)) error {
	if c.Tag == "" {
		c.Tag = LookupTag(lookup)
	}
	return mergo.Merge(c, DefaultConfig())
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	result := utils.MultiErrorWithFormat()

	if c.Port < 1 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("port %d is out of range 1-65535", c.Port))
	}
	if strings.TrimSpace(c.Host) == "" {
		result = multierror.Append(result, fmt.Errorf("host must not be empty"))
	}
	if strings.TrimSpace(c.AllowOrigin) == "" {
		result = multierror.Append(result, fmt.Errorf("allowed origin must not be empty"))
	}
	if strings.TrimSpace(c.Tag) == "" {
		result = multierror.Append(result, fmt.Errorf("tag must not be empty"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return ferror.MakeError(ferror.ErrorInvalidArgument, err.Error())
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
