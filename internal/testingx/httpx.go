package testingx

//
// HTTP test servers.
//

import (
	"net"
	"net/http"
	"net/http/httptest"

	"github.com/expfactory/expanalysis/internal/runtimex"
)

// MustNewHTTPServer creates a new [*httptest.Server] using the given handler.
//
// The caller is responsible for calling Close when done.
func MustNewHTTPServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	runtimex.Assert(server.URL != "", "httptest returned an empty URL")
	return server
}

// HTTPHandlerReset returns a [http.Handler] that closes the connection
// abruptly as soon as it receives a request, causing a RST.
func HTTPHandlerReset() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hijacker, good := w.(http.Hijacker)
		runtimex.Assert(good, "the response writer is not an http.Hijacker")
		conn, _ := runtimex.Try2(hijacker.Hijack())
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetLinger(0)
		}
		conn.Close()
	})
}

// HTTPHandlerStatus returns a [http.Handler] that always replies with the given status.
func HTTPHandlerStatus(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}
