// MIT License
//
// Copyright (c) 2025 Advanced Micro Devices, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package validations loads and queries the per-group validation results an
// installer reports for clusters and hosts.
package validations

import (
	"fmt"
	"regexp"

	"github.com/go-logr/logr"
	"github.com/stoewer/go-strcase"
	"k8s.io/apimachinery/pkg/util/json"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/metrics"
)

// Validation group names.
const (
	GroupHostsData      = "hostsData"
	GroupNetwork        = "network"
	GroupHardware       = "hardware"
	GroupInfrastructure = "infrastructure"
	GroupConfiguration  = "configuration"
	GroupOperators      = "operators"
)

var objectKey = regexp.MustCompile(`"([\w-]+)":`)

// MalformedValidationsError reports a validations payload that could not be decoded.
type MalformedValidationsError struct {
	Err error
}

func (e *MalformedValidationsError) Error() string {
	return fmt.Sprintf("malformed validations payload: %v", e.Err)
}

func (e *MalformedValidationsError) Unwrap() error {
	return e.Err
}

// Parse decodes a raw validations payload. Object keys are converted to lower
// camel case first so snake_case and kebab-case group names are normalized.
// An empty payload yields an empty, non-nil map.
func Parse(raw string) (v1beta1.ValidationsInfo, error) {
	info := v1beta1.ValidationsInfo{}
	if raw == "" {
		return info, nil
	}
	normalized := objectKey.ReplaceAllStringFunc(raw, func(key string) string {
		name := objectKey.FindStringSubmatch(key)[1]
		return `"` + strcase.LowerCamelCase(name) + `":`
	})
	if err := json.Unmarshal([]byte(normalized), &info); err != nil {
		return v1beta1.ValidationsInfo{}, &MalformedValidationsError{Err: err}
	}
	if info == nil {
		info = v1beta1.ValidationsInfo{}
	}
	return info, nil
}

var defaultLogger = logf.Log.WithName("validations")

// Load decodes a raw validations payload and never fails: malformed input
// yields an empty map and is logged.
func Load(raw string) v1beta1.ValidationsInfo {
	return LoadWithLogger(defaultLogger, "", raw)
}

// LoadWithLogger is Load with malformed payloads logged and counted under resource.
func LoadWithLogger(log logr.Logger, resource, raw string) v1beta1.ValidationsInfo {
	info, err := Parse(raw)
	if err != nil {
		log.Error(err, "Failed to parse validations info", "resource", resource)
		metrics.RecordMalformedValidations(resource)
	}
	return info
}
