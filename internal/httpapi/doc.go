// SPDX-License-Identifier: BSD-3-Clause

// Package httpapi is the external collaborator: a thin net/http shell
// around internal/api. It contains no business logic, only request
// decoding, response encoding, routing via http.ServeMux, and mapping
// of the internal/apierr error taxonomy onto HTTP status codes.
package httpapi
