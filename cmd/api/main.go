package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"

	userhandlers "github.com/vistream/vistream/cmd/api/handlers/user"
	interactiondb "github.com/vistream/vistream/cmd/interaction/dal/db"
	relationdb "github.com/vistream/vistream/cmd/relation/dal/db"
	userdb "github.com/vistream/vistream/cmd/user/dal/db"
	userservice "github.com/vistream/vistream/cmd/user/service"
	videodb "github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/cmd/video/infras/es"
	videoservice "github.com/vistream/vistream/cmd/video/service"
	"github.com/vistream/vistream/config"
	"github.com/vistream/vistream/pkg/cache"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
	"github.com/vistream/vistream/pkg/lock"
	"github.com/vistream/vistream/pkg/mq"
	"github.com/vistream/vistream/pkg/oss"
)

func Init() {
	config.Init()
	userdb.Init()
	videodb.Init()
	interactiondb.Init()
	relationdb.Init()
	cache.Load()
	lock.Init(cache.RDB)
	if err := oss.InitMinio(); err != nil {
		logrus.Warnf("object storage unavailable, uploads will fail: %v", err)
	}

	if err := es.Init(context.Background()); err != nil {
		logrus.Warnf("search disabled, falling back to database: %v", err)
	}

	if err := jwt.Init(userhandlers.Authenticate); err != nil {
		panic(err)
	}

	initMQ()
}

// initMQ wires the watch-event pipeline: views publish events, a consumer
// goroutine appends history rows. The API degrades to inline history
// writes when the broker is down.
func initMQ() {
	cfg := config.ConfigInfo.RabbitMq
	url := "amqp://" + cfg.Username + ":" + cfg.Password + "@" + cfg.Addr + "/"
	producer, err := mq.NewProducer(url)
	if err != nil {
		logrus.Warnf("watch events disabled, writing history inline: %v", err)
		return
	}
	videoservice.SetProducer(producer)

	consumer, err := mq.NewConsumer(url)
	if err != nil {
		logrus.Warnf("watch event consumer failed to start: %v", err)
		return
	}
	go func() {
		if err := consumer.ConsumeWatchEvents(context.Background(), userservice.HandleWatchEvent); err != nil {
			logrus.Errorf("watch event consumer stopped: %v", err)
		}
	}()
}

func main() {
	Init()

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(4*1024*1024*1024),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": "internal server error",
			})
		})))

	register(r)
	r.Spin()
}
