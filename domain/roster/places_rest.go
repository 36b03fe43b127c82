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
	PathPlaces = "/v1/places"
)

func RegisterPlacesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathPlaces, middleWares...)
	g.GET("", handleListPlaces)
	g.POST("", handleCreatePlace)
	g.PUT(":id", handleUpdatePlaceName)
	g.PUT(":id/group", handleUpdatePlaceGroup)
	g.DELETE(":id", handleDeletePlace)
}

func handleListPlaces(c *gin.Context) {
	places, err := ListPlacesFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, places)
}

func handleCreatePlace(c *gin.Context) {
	req := domain.PlaceCreation{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreatePlaceFunc(req, time.Now(), session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleUpdatePlaceName(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	req := domain.PlaceUpdating{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdatePlaceNameFunc(id, req, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleUpdatePlaceGroup(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	req := domain.PlaceGroupUpdating{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdatePlaceGroupFunc(id, req, time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeletePlace(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeletePlaceFunc(id, time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
