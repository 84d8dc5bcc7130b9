package zipcloud

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
)

// errPlaintext is returned for any request that is not https.
var errPlaintext = errors.New("refusing non-https request")

type httpsOnly struct {
	next http.RoundTripper
}

func (t *httpsOnly) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", errPlaintext, req.URL.Redacted())
	}
	return t.next.RoundTrip(req)
}

// newHTTPClient builds a client for a single lookup. A nil pool means the platform
// root store. Only HTTP/1.1 is negotiated and redirects are not followed.
func newHTTPClient(rootCAs *x509.CertPool) (*http.Client, *http.Transport) {
	protocols := new(http.Protocols)
	protocols.SetHTTP1(true)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			RootCAs:    rootCAs,
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"http/1.1"},
		},
		Protocols: protocols,
	}

	client := &http.Client{
		Transport: &httpsOnly{next: transport},
		// A redirect is a response like any other non-200 status.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return client, transport
}
