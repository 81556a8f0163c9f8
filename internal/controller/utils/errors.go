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
	"errors"
	"net"
	"syscall"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrorCategory classifies API failures seen while reconciling.
type ErrorCategory int

const (
	ErrorCategoryUnknown ErrorCategory = iota
	ErrorCategoryInfrastructure
	ErrorCategoryAuth
	ErrorCategoryMissingResource
	ErrorCategoryInvalidSpec
)

// String returns the human-readable name of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryInfrastructure:
		return "Infrastructure"
	case ErrorCategoryAuth:
		return "Auth"
	case ErrorCategoryMissingResource:
		return "MissingResource"
	case ErrorCategoryInvalidSpec:
		return "InvalidSpec"
	default:
		return "Unknown"
	}
}

// StateEngineError is a categorized error returned by the fetch and patch helpers.
type StateEngineError interface {
	error
	Category() ErrorCategory
	Reason() string
	UserMessage() string
	// Retriable reports whether requeueing can resolve the error.
	Retriable() bool
}

type stateEngineError struct {
	err     error
	cat     ErrorCategory
	reason  string
	message string
}

func (e *stateEngineError) Error() string {
	switch {
	case e.reason != "" && e.message != "":
		return e.reason + ": " + e.message
	case e.reason != "":
		return e.reason
	case e.message != "":
		return e.message
	case e.err != nil:
		return e.err.Error()
	}
	return "unknown error"
}

func (e *stateEngineError) Unwrap() error {
	return e.err
}

func (e *stateEngineError) Category() ErrorCategory {
	return e.cat
}

func (e *stateEngineError) Reason() string {
	return e.reason
}

func (e *stateEngineError) UserMessage() string {
	return e.message
}

func (e *stateEngineError) Retriable() bool {
	switch e.cat {
	case ErrorCategoryInfrastructure, ErrorCategoryUnknown, ErrorCategoryMissingResource:
		return true
	}
	return false
}

func newStateEngineError(cat ErrorCategory, reason, message string, cause error) StateEngineError {
	return &stateEngineError{err: cause, cat: cat, reason: reason, message: message}
}

// NewInfrastructureError creates an error for transient API or network failures.
func NewInfrastructureError(reason, message string, cause error) StateEngineError {
	return newStateEngineError(ErrorCategoryInfrastructure, reason, message, cause)
}

// NewAuthError creates an error for missing RBAC permissions or credentials.
func NewAuthError(reason, message string, cause error) StateEngineError {
	return newStateEngineError(ErrorCategoryAuth, reason, message, cause)
}

// NewMissingResourceError creates an error for a resource that does not exist
// yet, such as agents not registered or a CRD not installed.
func NewMissingResourceError(reason, message string, cause error) StateEngineError {
	return newStateEngineError(ErrorCategoryMissingResource, reason, message, cause)
}

// NewInvalidSpecError creates an error for objects the engine cannot interpret.
func NewInvalidSpecError(reason, message string, cause error) StateEngineError {
	return newStateEngineError(ErrorCategoryInvalidSpec, reason, message, cause)
}

// IsStateEngineError returns true if the error is a StateEngineError.
func IsStateEngineError(err error) bool {
	var se StateEngineError
	return errors.As(err, &se)
}

// CategorizeError inspects a raw error and categorizes it as a StateEngineError.
// Errors that already are StateEngineErrors are returned unchanged.
func CategorizeError(err error) StateEngineError {
	if err == nil {
		return nil
	}

	var se StateEngineError
	if errors.As(err, &se) {
		return se
	}

	if statusErr := apierrors.APIStatus(nil); errors.As(err, &statusErr) {
		switch {
		case apierrors.IsNotFound(err):
			return NewMissingResourceError("NotFound", "Resource not found", err)
		case apierrors.IsUnauthorized(err):
			return NewAuthError("Unauthorized", "Authentication required or invalid credentials", err)
		case apierrors.IsForbidden(err):
			return NewAuthError("Forbidden", "Insufficient permissions to access resource", err)
		case apierrors.IsInvalid(err), apierrors.IsBadRequest(err):
			return NewInvalidSpecError("InvalidSpec", "Request was rejected as invalid", err)
		case apierrors.IsConflict(err):
			return NewInfrastructureError("Conflict", "Resource was modified concurrently", err)
		case apierrors.IsServerTimeout(err), apierrors.IsTimeout(err):
			return NewInfrastructureError("Timeout", "Request timed out", err)
		case apierrors.IsServiceUnavailable(err), apierrors.IsInternalError(err):
			return NewInfrastructureError("ServiceUnavailable", "Kubernetes API server unavailable or internal error", err)
		case apierrors.IsTooManyRequests(err):
			return NewInfrastructureError("RateLimited", "Too many requests - rate limited", err)
		}
		if code := statusErr.Status().Code; code >= 500 {
			return NewInfrastructureError("ServerError", "Server error (5xx)", err)
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return NewInfrastructureError("NetworkFailure", "Connection to the API server failed", err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewInfrastructureError("DNSFailure", "DNS resolution failed for "+dnsErr.Name, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewInfrastructureError("NetworkError", "Network operation failed: "+opErr.Op, err)
	}

	return newStateEngineError(ErrorCategoryUnknown, "UnknownError", err.Error(), err)
}
