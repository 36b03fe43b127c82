package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	PathEvents = "/v1/events"
)

func RegisterEventsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathEvents, middleWares...)
	g.GET("", handleQueryEvents)
}

func handleQueryEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "50"))
	if err != nil || size < 1 || size > 500 {
		size = 50
	}

	records, err := LoadEventsFunc(page, size)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
