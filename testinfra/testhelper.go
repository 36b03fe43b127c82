package testinfra

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

// ExecuteRequest runs req through the router and returns status, body and
// the raw response.
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	bodyBytes, _ := ioutil.ReadAll(resp.Body)
	return resp.StatusCode, string(bodyBytes), resp
}

// BuildSession builds an authenticated session for domain-level tests.
func BuildSession(uid types.ID, name string) *session.Session {
	return &session.Session{
		Token:    "test-token",
		Identity: session.Identity{ID: uid, Name: name},
		Context:  context.Background(),
	}
}

// AnonymousSession carries only a request context, as an unauthenticated
// request would.
func AnonymousSession() *session.Session {
	return &session.Session{Context: context.Background()}
}
