package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, br, zstd"

// decoderFunc wraps a compressed body with a decompressing reader
type decoderFunc func(body io.Reader) (io.ReadCloser, error)

var decoders = map[string]decoderFunc{
	"gzip": func(body io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(body)
	},
	"br": func(body io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport advertises gzip, brotli and zstd to the upstream and
// transparently decodes whichever one it answers with.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	codings, ok := contentCodings(resp.Header.Get("Content-Encoding"))
	if !ok || len(codings) == 0 {
		return resp, nil
	}

	body := &decodedBody{raw: resp.Body}
	var reader io.Reader = resp.Body
	// Codings are listed in the order they were applied
	for i := len(codings) - 1; i >= 0; i-- {
		decoded, err := decoders[codings[i]](reader)
		if err != nil {
			_ = body.Close()
			return nil, err
		}
		body.decoders = append(body.decoders, decoded)
		reader = decoded
	}
	body.Reader = reader

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decodedBody reads through the decoder chain and closes every decoder and the
// raw network body
type decodedBody struct {
	io.Reader
	decoders []io.ReadCloser
	raw      io.ReadCloser
}

func (d *decodedBody) Close() error {
	var decoderErr error
	for i := len(d.decoders) - 1; i >= 0; i-- {
		if err := d.decoders[i].Close(); err != nil && decoderErr == nil {
			decoderErr = err
		}
	}
	if err := d.raw.Close(); err != nil {
		return err
	}
	return decoderErr
}

// contentCodings splits a Content-Encoding header into lower-cased codings,
// dropping "identity". ok is false when a coding has no decoder, in which case
// the response must be left as is.
func contentCodings(header string) (codings []string, ok bool) {
	for _, coding := range strings.Split(header, ",") {
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding == "" || coding == "identity" {
			continue
		}
		if _, known := decoders[coding]; !known {
			return nil, false
		}
		codings = append(codings, coding)
	}
	return codings, true
}
