package roster

import (
	"net/http"
	"time"

	"dutyroster/bizerror"
	"dutyroster/common"
	"dutyroster/domain"
	"dutyroster/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathGroups = "/v1/groups"
)

func RegisterGroupsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathGroups, middleWares...)
	g.GET("", handleListGroups)
	g.POST("", handleCreateGroup)
	g.DELETE(":id", handleDeleteGroup)
}

func handleListGroups(c *gin.Context) {
	groups, err := ListGroupsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, groups)
}

func handleCreateGroup(c *gin.Context) {
	req := domain.GroupCreation{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateGroupFunc(req, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleDeleteGroup(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeleteGroupFunc(id, time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
