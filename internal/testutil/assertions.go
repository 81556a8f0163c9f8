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

package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// DecodeReadiness parses a step readiness annotation value.
func DecodeReadiness(t *testing.T, value string) map[string]constants.Readiness {
	t.Helper()
	readiness := map[string]constants.Readiness{}
	if err := json.Unmarshal([]byte(value), &readiness); err != nil {
		t.Fatalf("invalid readiness annotation %q: %v", value, err)
	}
	return readiness
}

// AssertStepReadiness fails the test if the annotation does not report the expected readiness for step
func AssertStepReadiness(t *testing.T, annotations map[string]string, key, step string, expected constants.Readiness) {
	t.Helper()
	value, ok := annotations[key]
	if !ok {
		t.Fatalf("annotation %q not found", key)
	}
	readiness := DecodeReadiness(t, value)
	if got := readiness[step]; got != expected {
		t.Errorf("step %q: expected readiness %q, got %q", step, expected, got)
	}
}

// DrainEvents returns the events buffered in a fake recorder channel.
func DrainEvents(events chan string) []string {
	var out []string
	for {
		select {
		case event := <-events:
			out = append(out, event)
		default:
			return out
		}
	}
}

// AssertEventContains fails the test if no event contains the expected substring
func AssertEventContains(t *testing.T, events []string, substring string) {
	t.Helper()
	for _, event := range events {
		if strings.Contains(event, substring) {
			return
		}
	}
	t.Errorf("expected an event containing %q, got %v", substring, events)
}
