// Package client talks to the to-do REST API.
//
// HTTPClient implements Client over net/http: it attaches the bearer token
// set with SetToken, encodes JSON bodies and turns non-2xx responses into
// *HTTPError values. Callers match conditions with errors.Is:
//
//   - ErrUnauthorized for 401 and 403 (the session is no longer valid),
//   - ErrUnavailable when the server cannot be reached,
//   - common.ErrValidation, common.ErrorNotFound, common.ErrAlreadyExists,
//     common.ErrorInternal for 400, 404, 409 and 5xx.
package client
