package datauri

import (
	"bytes"
	"crypto/rand"
	"mime/multipart"
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	large := make([]byte, 2<<20) // 2 MB
	if _, err := rand.Read(large); err != nil {
		t.Fatalf("generating payload: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single_byte", []byte{0x00}},
		{"png_header", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}},
		{"text", []byte("not really an image")},
		{"large", large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.data))
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(tt.data))
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode("not valid base64!!!"); err == nil {
		t.Fatal("Decode should fail on invalid input")
	}
}

func TestURI(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	uri := URI(png)

	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("URI = %q, want image/png data URI", uri)
	}

	payload := strings.TrimPrefix(uri, "data:image/png;base64,")
	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !bytes.Equal(got, png) {
		t.Error("URI payload does not round-trip to original bytes")
	}
}

func TestHasFile(t *testing.T) {
	tests := []struct {
		name string
		fh   *multipart.FileHeader
		want bool
	}{
		{"nil_header", nil, false},
		{"empty_filename", &multipart.FileHeader{Filename: ""}, false},
		{"named_file", &multipart.FileHeader{Filename: "photo.jpg"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasFile(tt.fh); got != tt.want {
				t.Errorf("HasFile() = %v, want %v", got, tt.want)
			}
		})
	}
}
