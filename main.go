package main

import (
	"github.com/codequest532/vyrona-social/internal/api"
	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/cron"
	"github.com/sirupsen/logrus"
)

func main() {

	if err := config.InitDB(); err != nil {
		logrus.WithError(err).Fatal("DB not initialized")
	}

	cron.StartCronJobs()

	api.NewServer()

}
