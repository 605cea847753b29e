package main

import (
	"flag"
	"fmt"

	boot "BrewMasterAI/app/services/chat/internal/bootstrap"
	"BrewMasterAI/app/services/chat/internal/config"
	"BrewMasterAI/app/services/chat/internal/handler"
	"BrewMasterAI/app/services/chat/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/chat.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	handler.RegisterHandlers(server, ctx)

	// deferred tasks run in-process next to the rest server
	if stop := boot.StartAsynq(ctx); stop != nil {
		defer stop()
	}
	if ctx.KafkaWriter != nil {
		defer ctx.KafkaWriter.Close()
	}

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
