// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"fmt"
	"io"
	"strings"
)

// Response is one of the fixed set of status/reason/body triples this
// server can emit. Responses are values, not owned resources: handlers
// select one of the package-level constants below rather than building
// their own.
type Response struct {
	Code   int
	Reason string
	Body   string
}

var (
	ResponseOK                  = Response{200, "OK", "OK\n"}
	ResponseCreated             = Response{201, "Created", "Created\n"}
	ResponseBadRequest          = Response{400, "Bad Request", "Bad Request\n"}
	ResponseForbidden           = Response{403, "Forbidden", "Forbidden\n"}
	ResponseNotFound            = Response{404, "Not Found", "Not Found\n"}
	ResponseInternalServerError = Response{500, "Internal Server Error", "Internal Server Error\n"}
	ResponseNotImplemented      = Response{501, "Not Implemented", "Not Implemented\n"}
	ResponseVersionNotSupported = Response{505, "HTTP Version Not Supported", "HTTP Version Not Supported\n"}
)

// writeResponse renders the status line, Content-Length header and body
// to w, using body in place of r.Body when body is non-nil (the GET 200
// case, where the body is file content and Content-Length is the file
// size rather than len(r.Body)).
func writeResponse(w io.Writer, r Response, body io.Reader, bodyLen int64) error {
	if body == nil {
		body = strings.NewReader(r.Body)
		bodyLen = int64(len(r.Body))
	}
	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\nContent-Length: %d\r\n\r\n", r.Code, r.Reason, bodyLen); err != nil {
		return err
	}
	_, err := io.CopyN(w, body, bodyLen)
	return err
}
