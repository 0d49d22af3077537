// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"regexp"
	"strconv"
	"strings"
)

// Method is a closed variant over the request methods this server
// recognizes. Anything outside {GET, PUT} collapses to MethodUnsupported
// rather than being rejected at parse time — an unsupported method still
// produces a well-formed request the dispatcher turns into a 501.
type Method int

const (
	MethodUnsupported Method = iota
	MethodGET
	MethodPUT
)

var (
	requestLineRE = regexp.MustCompile(`^([A-Za-z]{1,8}) (/[A-Za-z0-9.-]{1,63}) (HTTP/[0-9]\.[0-9])\r\n$`)
	headerLineRE  = regexp.MustCompile(`^([A-Za-z0-9.-]{1,128}): ([\x20-\x7E]{1,128})\r\n$`)
)

// Request is the result of parsing one connection's request line and
// headers. MethodToken preserves the raw method text even when it maps
// to MethodUnsupported, since the audit line (§4.I) needs the token the
// client actually sent.
type Request struct {
	MethodToken string
	Method      Method
	URI         string
	Headers     map[string]string // lower-cased header name -> value
	ContentLen  int64             // -1 unless the method is PUT
}

// Header looks up a header by its canonical (mixed-case) name.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.Headers[strings.ToLower(name)]
	return v, ok
}

// parseRequest validates, in order, the request line, the HTTP version,
// the header block and (for body-carrying methods) Content-Length,
// exactly as §4.E specifies. raw must already contain everything up to
// and including the terminating "\r\n\r\n" — see connection.parse.
//
// On success it returns a fully parsed *Request and a nil Response. On
// failure it returns a non-nil Response to send, plus a *Request that is
// as complete as parsing got, so the caller can still audit with the
// token the client sent. MethodToken is set once the request line has
// matched; when the request line itself does not match, the returned
// *Request is empty and MethodToken is "".
func parseRequest(raw []byte) (*Request, *Response) {
	text := string(raw)
	lineEnd := strings.Index(text, "\r\n")
	if lineEnd < 0 {
		return &Request{}, &ResponseBadRequest
	}
	requestLine := text[:lineEnd+2]
	rest := text[lineEnd+2:]

	m := requestLineRE.FindStringSubmatch(requestLine)
	if m == nil {
		return &Request{}, &ResponseBadRequest
	}
	methodToken, uri, version := m[1], m[2], m[3]

	req := &Request{
		MethodToken: methodToken,
		Method:      classifyMethod(methodToken),
		URI:         uri,
		Headers:     map[string]string{},
		ContentLen:  -1,
	}

	if version != "HTTP/1.1" {
		return req, &ResponseVersionNotSupported
	}

	for rest != "\r\n" {
		idx := strings.Index(rest, "\r\n")
		if idx < 0 {
			return req, &ResponseBadRequest
		}
		line := rest[:idx+2]
		rest = rest[idx+2:]

		hm := headerLineRE.FindStringSubmatch(line)
		if hm == nil {
			return req, &ResponseBadRequest
		}
		req.Headers[strings.ToLower(hm[1])] = hm[2]
	}

	if req.Method == MethodPUT {
		cl, ok := req.Headers["content-length"]
		if !ok {
			return req, &ResponseBadRequest
		}
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || n < 0 {
			return req, &ResponseBadRequest
		}
		req.ContentLen = n
	}

	return req, nil
}

func classifyMethod(token string) Method {
	switch token {
	case "GET":
		return MethodGET
	case "PUT":
		return MethodPUT
	default:
		return MethodUnsupported
	}
}
