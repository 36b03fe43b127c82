package account

import (
	"net/http"

	"dutyroster/bizerror"
	"dutyroster/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathSessionUsers = "/v1/session-users"
)

func RegisterSessionUsersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSessionUsers, middleWares...)
	g.GET("", handleQuerySessionUser)
	g.PUT("basic-auths", handleUpdateBasicAuth)
}

// handleQuerySessionUser answers the "who am I" probe of the admin page.
func handleQuerySessionUser(c *gin.Context) {
	s := session.ExtractSessionFromGinContext(c)
	if s.Identity.ID == 0 {
		panic(bizerror.ErrUnauthenticated)
	}
	c.JSON(http.StatusOK, &s.Identity)
}

func handleUpdateBasicAuth(c *gin.Context) {
	payload := BasicAuthUpdating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err := UpdateBasicAuthSecretFunc(&payload, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}
