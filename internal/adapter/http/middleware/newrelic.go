package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelic starts one transaction per request, named after the gin route
// pattern. A nil app disables it.
func NewRelic(app *newrelic.Application) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app == nil {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		txn := app.StartTransaction(c.Request.Method + " " + route)
		defer txn.End()

		txn.SetWebRequestHTTP(c.Request)
		c.Request = newrelic.RequestWithTransactionContext(c.Request, txn)

		c.Next()

		txn.SetWebResponse(statusOnlyWriter{header: c.Writer.Header()}).WriteHeader(c.Writer.Status())
		if len(c.Errors) > 0 {
			txn.NoticeError(c.Errors.Last())
		}
	}
}

// statusOnlyWriter lets the agent record the response code after gin has
// already written the response.
type statusOnlyWriter struct {
	header http.Header
}

func (w statusOnlyWriter) Header() http.Header         { return w.header }
func (w statusOnlyWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w statusOnlyWriter) WriteHeader(int)             {}
