package rotation

import (
	"net/http"
	"time"

	"dutyroster/bizerror"
	"dutyroster/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	PathRotation = "/v1/rotation"

	// a double-clicked rotate button must not fire two advances
	advanceLimiter = rate.NewLimiter(rate.Every(time.Second), 1)
)

func RegisterRotationRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathRotation, middleWares...)
	g.POST("advance", handleAdvanceRotation)
	g.POST("regenerate", handleRegenerateRotation)
}

func handleAdvanceRotation(c *gin.Context) {
	if !advanceLimiter.Allow() {
		panic(bizerror.ErrTooManyRequests)
	}

	if err := AdvanceWeekRotationFunc(time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": "advanced"})
}

func handleRegenerateRotation(c *gin.Context) {
	if err := RegenerateWeekFunc(time.Now(), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": "regenerated"})
}
