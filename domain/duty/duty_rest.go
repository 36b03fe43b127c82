package duty

import (
	"net/http"
	"time"

	"dutyroster/session"

	"github.com/gin-gonic/gin"
)

var (
	PathDutyBoard = "/v1/duty-board"
	PathHistory   = "/v1/history"
)

func RegisterDutyRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathDutyBoard, middleWares...)
	g.GET("", handleGetWeekBoard)

	h := r.Group(PathHistory, middleWares...)
	h.GET("", handleGetHistory)
	h.GET("counts", handleGetCountMatrix)
}

func handleGetWeekBoard(c *gin.Context) {
	board, err := LoadWeekBoardFunc(time.Now(), session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, board)
}

func handleGetHistory(c *gin.Context) {
	weeks, err := LoadHistoryFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, weeks)
}

func handleGetCountMatrix(c *gin.Context) {
	matrix, err := LoadCountMatrixFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, matrix)
}
