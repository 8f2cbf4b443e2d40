// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fault

import (
	"gitlab.com/tozd/go/errors"
)

// 🚦 Error classes used to decide how far a failure propagates.
var (
	// ErrConfiguration aborts the whole run (missing credentials, missing config file).
	ErrConfiguration = errors.Base("configuration error")
	// ErrValidation aborts a single product; the run continues.
	ErrValidation = errors.Base("validation error")
	// ErrRemoteCall marks a failed storage or catalog call; the caller treats the operation as a no-op.
	ErrRemoteCall = errors.Base("remote call failed")
)

// classified attaches an error class to err without changing its message
type classified struct {
	class error
	err   error
}

func (c *classified) Error() string { return c.err.Error() }

func (c *classified) Unwrap() []error { return []error{c.err, c.class} }

func classify(err, class error) error {
	if err == nil {
		return nil
	}
	return &classified{class: class, err: err}
}

// 🔧 Configuration annotates err as a configuration error
func Configuration(err error) error {
	return classify(err, ErrConfiguration)
}

// 🔧 Configurationf creates a configuration error
func Configurationf(format string, args ...any) error {
	return Configuration(errors.Errorf(format, args...))
}

// 🔧 Validation annotates err as a validation error
func Validation(err error) error {
	return classify(err, ErrValidation)
}

// 🔧 Validationf creates a validation error
func Validationf(format string, args ...any) error {
	return Validation(errors.Errorf(format, args...))
}

// 🔧 Remote annotates err as a failed remote call
func Remote(err error) error {
	return classify(err, ErrRemoteCall)
}

// 🔧 Remotef creates a remote call error
func Remotef(format string, args ...any) error {
	return Remote(errors.Errorf(format, args...))
}

// 🏷️ Kind returns a short label for the class of err, used in reports
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrRemoteCall):
		return "remote"
	default:
		return "unknown"
	}
}
