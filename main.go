package main

import (
	"context"
	"log"
	"net/http"

	"dutyroster/account"
	"dutyroster/avatar"
	"dutyroster/bizerror"
	"dutyroster/client/s3"
	"dutyroster/common"
	"dutyroster/domain"
	"dutyroster/domain/duty"
	"dutyroster/domain/roster"
	"dutyroster/domain/rotation"
	"dutyroster/event"
	"dutyroster/infra/tracing"
	"dutyroster/persistence"
	"dutyroster/servehttp"
	"dutyroster/session"
	"dutyroster/sessions"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(
		&domain.Member{}, &domain.Place{}, &domain.Group{},
		&domain.Week{}, &domain.Assignment{},
		&event.EventRecord{}, &account.User{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	if err := account.Bootstrap(); err != nil {
		log.Fatalf("admin bootstrap failed %v\n", err)
	}

	tracingCloser, err := tracing.Bootstrap(common.GetServiceName())
	if err != nil {
		common.Log.Warnf("tracing is disabled: %v", err)
	} else {
		defer tracingCloser.Close()
	}

	s3.Bootstrap()

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "dutyroster")
	})

	sessions.RegisterSessionsRestAPI(engine)

	// the duty board and history are readable without a session
	duty.RegisterDutyRestAPI(engine)

	auth := session.SimpleAuthFilter()
	account.RegisterSessionUsersRestAPI(engine, auth)
	roster.RegisterMembersRestAPI(engine, auth)
	roster.RegisterPlacesRestAPI(engine, auth)
	roster.RegisterGroupsRestAPI(engine, auth)
	rotation.RegisterRotationRestAPI(engine, auth)
	event.RegisterEventsRestAPI(engine, auth)
	avatar.RegisterAvatarAPI(engine, auth)

	servehttp.StartHTTPServer(engine)
}
