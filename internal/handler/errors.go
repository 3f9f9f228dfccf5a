// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration names neither an HTTP nor a gRPC address. The server binary
// treats it as fatal.
var errNoHandlersAreCreated = errors.New("no handlers are created")
