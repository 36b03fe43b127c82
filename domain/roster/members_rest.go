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
	PathMembers = "/v1/members"
)

func RegisterMembersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathMembers, middleWares...)
	g.GET("", handleListMembers)
	g.POST("", handleCreateMember)
	g.PUT(":id", handleUpdateMemberName)
	g.PUT(":id/group", handleUpdateMemberGroup)
	g.DELETE(":id", handleDeleteMember)
}

func handleListMembers(c *gin.Context) {
	members, err := ListMembersFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, members)
}

func handleCreateMember(c *gin.Context) {
	req := domain.MemberCreation{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateMemberFunc(req, time.Now(), session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleUpdateMemberName(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	req := domain.MemberUpdating{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateMemberNameFunc(id, req, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleUpdateMemberGroup(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	req := domain.MemberGroupUpdating{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateMemberGroupFunc(id, req, time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeleteMember(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeleteMemberFunc(id, time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
