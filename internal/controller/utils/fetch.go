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
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
)

// FetchResult wraps a fetched value and its error.
type FetchResult[T any] struct {
	Value T
	Error error
}

// IsNotFound returns true if the error is a NotFound error.
func (fr FetchResult[T]) IsNotFound() bool {
	return apierrors.IsNotFound(fr.Error)
}

// OK returns true if there was no error.
func (fr FetchResult[T]) OK() bool {
	return fr.Error == nil
}

// HasError returns true if there was an error.
func (fr FetchResult[T]) HasError() bool {
	return fr.Error != nil
}

// Fetch retrieves a single object and wraps the result.
func Fetch[T client.Object](ctx context.Context, c client.Client, key client.ObjectKey, obj T) FetchResult[T] {
	return FetchResult[T]{
		Value: obj,
		Error: c.Get(ctx, key, obj),
	}
}

// FetchList retrieves a list of objects and wraps the result.
func FetchList[T client.ObjectList](ctx context.Context, c client.Client, list T, opts ...client.ListOption) FetchResult[T] {
	return FetchResult[T]{
		Value: list,
		Error: c.List(ctx, list, opts...),
	}
}

// FetchInto retrieves an object of the given kind as unstructured data and
// converts it into T. The installer CRDs are read this way so the engine does
// not depend on their Go packages.
func FetchInto[T any](ctx context.Context, c client.Client, gvk schema.GroupVersionKind, key client.ObjectKey) FetchResult[*T] {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(gvk)
	if err := c.Get(ctx, key, u); err != nil {
		return FetchResult[*T]{Error: err}
	}
	value, err := FromUnstructured[T](u)
	return FetchResult[*T]{Value: value, Error: err}
}

// ListInto lists objects of the given list kind and converts every item into T.
func ListInto[T any](ctx context.Context, c client.Client, listGVK schema.GroupVersionKind, opts ...client.ListOption) FetchResult[[]T] {
	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(listGVK)
	if err := c.List(ctx, list, opts...); err != nil {
		return FetchResult[[]T]{Error: err}
	}
	items := make([]T, 0, len(list.Items))
	for i := range list.Items {
		item, err := FromUnstructured[T](&list.Items[i])
		if err != nil {
			return FetchResult[[]T]{Error: err}
		}
		items = append(items, *item)
	}
	return FetchResult[[]T]{Value: items}
}

// FromUnstructured converts unstructured content into T.
func FromUnstructured[T any](u *unstructured.Unstructured) (*T, error) {
	value := new(T)
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(u.UnstructuredContent(), value); err != nil {
		return nil, NewInvalidSpecError(
			"ConversionFailed",
			fmt.Sprintf("Failed to decode %s %s/%s", u.GetKind(), u.GetNamespace(), u.GetName()),
			err,
		)
	}
	return value, nil
}

// FetchAgentClusterInstall retrieves an AgentClusterInstall.
func FetchAgentClusterInstall(ctx context.Context, c client.Client, key client.ObjectKey) FetchResult[*v1beta1.AgentClusterInstall] {
	return FetchInto[v1beta1.AgentClusterInstall](ctx, c, v1beta1.AgentClusterInstallGVK, key)
}

// FetchClusterAgents lists the agents bound to the cluster deployment
// namespace/clusterDeploymentName. Agents may live in any namespace.
func FetchClusterAgents(ctx context.Context, c client.Client, namespace, clusterDeploymentName string) FetchResult[[]v1beta1.Agent] {
	result := ListInto[v1beta1.Agent](ctx, c, v1beta1.AgentListGVK)
	if result.HasError() {
		return result
	}
	bound := make([]v1beta1.Agent, 0, len(result.Value))
	for i := range result.Value {
		if result.Value[i].BelongsTo(namespace, clusterDeploymentName) {
			bound = append(bound, result.Value[i])
		}
	}
	return FetchResult[[]v1beta1.Agent]{Value: bound}
}

// FetchBareMetalHosts lists the bare metal hosts of a namespace. A missing
// BareMetalHost CRD yields an empty list.
func FetchBareMetalHosts(ctx context.Context, c client.Client, namespace string) FetchResult[[]v1beta1.BareMetalHost] {
	result := ListInto[v1beta1.BareMetalHost](ctx, c, v1beta1.BareMetalHostListGVK, client.InNamespace(namespace))
	if result.HasError() && meta.IsNoMatchError(result.Error) {
		return FetchResult[[]v1beta1.BareMetalHost]{Value: []v1beta1.BareMetalHost{}}
	}
	return result
}
