// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package datauri converts binary upload payloads to and from the base64
// form embedded in rendered markup, and recognizes absent uploads.
package datauri

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Encode returns the base64 payload for a blob, suitable for a data: URI.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode reverses Encode, returning the original bytes.
func Decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return data, nil
}

// URI builds a complete data: URI for a blob, sniffing the media type
// from the content itself.
func URI(data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(data), Encode(data))
}

// HasFile reports whether an upload slot was actually supplied. A header
// with an empty filename counts as "no file" regardless of content.
func HasFile(fh *multipart.FileHeader) bool {
	return fh != nil && fh.Filename != ""
}

// ReadFile reads the full binary content of an uploaded file.
func ReadFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %q: %w", fh.Filename, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload %q: %w", fh.Filename, err)
	}
	return data, nil
}
