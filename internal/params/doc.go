// Package params models the parameters of an OAuth-signed HTTP request and
// renders them in the wire encodings such a request needs: a percent-encoded
// query string, the parameter component of the OAuth signature base string,
// and a multipart/form-data body.
//
// A List is built by adding ordinary parameters (Param) and file attachments
// (FileParam) and is then written to any io.Writer in a single Encoding:
//
//	list := params.NewList()
//	list.AddPair("status", "hello world")
//	list.Add(params.NewFileParam("media", "/tmp/cat.png", params.WithMimeType("image/png")))
//
//	n, err := list.EncodeTo(params.EncodingMultipart, body)
//
// File contents are streamed with a bounded buffer and never enter the
// signature base string. Whenever a file is present the list reports
// ChunkingRecommended so the transport can use chunked transfer encoding
// instead of computing a Content-Length up front.
package params
