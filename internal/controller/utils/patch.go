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

package controllerutils

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"gomodules.xyz/jsonpatch/v2"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// AnnotationsPatch builds the JSON patch operations that set the given
// annotations on obj. Annotations that already hold their value produce no
// operations.
func AnnotationsPatch(obj client.Object, annotations map[string]string) ([]jsonpatch.Operation, error) {
	current := obj.GetAnnotations()
	desired := maps.Clone(current)
	if desired == nil {
		desired = map[string]string{}
	}
	changed := false
	for key, value := range annotations {
		if existing, ok := current[key]; ok && existing == value {
			continue
		}
		desired[key] = value
		changed = true
	}
	if !changed {
		return nil, nil
	}

	original, err := json.Marshal(annotationsDocument(current))
	if err != nil {
		return nil, err
	}
	modified, err := json.Marshal(annotationsDocument(desired))
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreatePatch(original, modified)
}

func annotationsDocument(annotations map[string]string) map[string]any {
	metadata := map[string]any{}
	if annotations != nil {
		metadata["annotations"] = annotations
	}
	return map[string]any{"metadata": metadata}
}

// PatchAnnotations sets annotations on obj with a JSON patch. The patch is
// only sent when a value changes. It returns whether a patch was sent.
func PatchAnnotations(ctx context.Context, c client.Client, obj client.Object, annotations map[string]string) (bool, error) {
	operations, err := AnnotationsPatch(obj, annotations)
	if err != nil {
		return false, NewInvalidSpecError("PatchFailed", "Failed to build annotation patch", err)
	}
	if len(operations) == 0 {
		return false, nil
	}
	data, err := json.Marshal(operations)
	if err != nil {
		return false, NewInvalidSpecError("PatchFailed", "Failed to encode annotation patch", err)
	}
	if err := c.Patch(ctx, obj, client.RawPatch(types.JSONPatchType, data)); err != nil {
		return false, fmt.Errorf("failed to patch annotations of %s: %w", obj.GetName(), CategorizeError(err))
	}
	return true, nil
}

// PatchAnnotation sets a single annotation on obj with a JSON patch.
func PatchAnnotation(ctx context.Context, c client.Client, obj client.Object, key, value string) (bool, error) {
	return PatchAnnotations(ctx, c, obj, map[string]string{key: value})
}
