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

package validations

import (
	"slices"
	"sort"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// FilterByStep keeps whole groups listed in groups and, from every other group,
// only the validations whose id is listed in ids. Groups left empty are
// dropped. The result never contains a validation absent from info.
func FilterByStep(info v1beta1.ValidationsInfo, groups, ids []string) v1beta1.ValidationsInfo {
	result := v1beta1.ValidationsInfo{}
	for group, validations := range info {
		if slices.Contains(groups, group) {
			result[group] = slices.Clone(validations)
			continue
		}
		var selected []v1beta1.Validation
		for _, validation := range validations {
			if slices.Contains(ids, validation.ID) {
				selected = append(selected, validation)
			}
		}
		if len(selected) > 0 {
			result[group] = selected
		}
	}
	return result
}

func passing(validation v1beta1.Validation, softIDs []string) bool {
	return constants.ValidationStatus(validation.Status).Passing() || slices.Contains(softIDs, validation.ID)
}

// CheckValidations reports whether every required id is present in info and
// each of them passes or is soft.
func CheckValidations(info v1beta1.ValidationsInfo, requiredIDs, softIDs []string) bool {
	found := make(map[string]struct{}, len(requiredIDs))
	for _, validations := range info {
		for _, validation := range validations {
			if !slices.Contains(requiredIDs, validation.ID) {
				continue
			}
			if !passing(validation, softIDs) {
				return false
			}
			found[validation.ID] = struct{}{}
		}
	}
	for _, id := range requiredIDs {
		if _, ok := found[id]; !ok {
			return false
		}
	}
	return true
}

// CheckGroups reports whether every listed group is present in info and every
// validation in it passes or is soft. A present but empty group passes.
func CheckGroups(info v1beta1.ValidationsInfo, groups, softIDs []string) bool {
	for _, group := range groups {
		validations, ok := info[group]
		if !ok {
			return false
		}
		for _, validation := range validations {
			if !passing(validation, softIDs) {
				return false
			}
		}
	}
	return true
}

// Failing returns every validation with status failure, ordered by group name.
func Failing(info v1beta1.ValidationsInfo) []v1beta1.Validation {
	var failing []v1beta1.Validation
	for _, group := range Groups(info) {
		for _, validation := range info[group] {
			if constants.ValidationStatus(validation.Status) == constants.ValidationFailure {
				failing = append(failing, validation)
			}
		}
	}
	return failing
}

// OnlySoftFailing reports whether, after filtering info by groups and ids, at
// least one validation fails and all failing ids are soft.
func OnlySoftFailing(info v1beta1.ValidationsInfo, groups, ids, softIDs []string) bool {
	failing := Failing(FilterByStep(info, groups, ids))
	if len(failing) == 0 {
		return false
	}
	for _, validation := range failing {
		if !slices.Contains(softIDs, validation.ID) {
			return false
		}
	}
	return true
}

// Groups returns the group names of info in sorted order.
func Groups(info v1beta1.ValidationsInfo) []string {
	groups := make([]string, 0, len(info))
	for group := range info {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// IDs returns every validation id in info, ordered by group name.
func IDs(info v1beta1.ValidationsInfo) []string {
	var ids []string
	for _, group := range Groups(info) {
		for _, validation := range info[group] {
			ids = append(ids, validation.ID)
		}
	}
	return ids
}

// Find returns the validation with the given id and its group.
func Find(info v1beta1.ValidationsInfo, id string) (v1beta1.Validation, string, bool) {
	for _, group := range Groups(info) {
		for _, validation := range info[group] {
			if validation.ID == id {
				return validation, group, true
			}
		}
	}
	return v1beta1.Validation{}, "", false
}
