package auth

import (
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// mockBody is a ReadCloser over a fixed byte slice.
type mockBody struct {
	data []byte
	pos  int
}

func (m *mockBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *mockBody) Close() error { return nil }

// mockHTTPClient implements tls_client.HttpClient, replaying a canned
// response and recording the last request.
type mockHTTPClient struct {
	response *fhttp.Response
	err      error

	lastRequest *fhttp.Request
	lastBody    []byte
}

func newMockHTTPClient(body []byte, statusCode int) *mockHTTPClient {
	return &mockHTTPClient{
		response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       &mockBody{data: body},
			Header:     make(fhttp.Header),
		},
	}
}

func newMockHTTPClientWithError(err error) *mockHTTPClient {
	return &mockHTTPClient{err: err}
}

func (m *mockHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.lastRequest = req
	if req.Body != nil {
		m.lastBody, _ = io.ReadAll(req.Body)
	}
	return m.response, m.err
}

func (m *mockHTTPClient) Get(url string) (*fhttp.Response, error) {
	return m.response, m.err
}

func (m *mockHTTPClient) Head(url string) (*fhttp.Response, error) {
	return m.response, m.err
}

func (m *mockHTTPClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return m.response, m.err
}

func (m *mockHTTPClient) GetCookies(u *url.URL) []*fhttp.Cookie { return nil }

func (m *mockHTTPClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

func (m *mockHTTPClient) SetCookieJar(jar fhttp.CookieJar) {}

func (m *mockHTTPClient) GetCookieJar() fhttp.CookieJar { return nil }

func (m *mockHTTPClient) SetProxy(proxyUrl string) error { return nil }

func (m *mockHTTPClient) GetProxy() string { return "" }

func (m *mockHTTPClient) SetFollowRedirect(followRedirect bool) {}

func (m *mockHTTPClient) GetFollowRedirect() bool { return false }

func (m *mockHTTPClient) CloseIdleConnections() {}

func (m *mockHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }
