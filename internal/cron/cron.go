package cron

import (
	"time"

	"github.com/codequest532/vyrona-social/internal/services"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

func StartCronJobs() {
	s := gocron.NewScheduler(time.Local)

	s.Every(1).Day().Do(mainCleanup)
	s.StartAsync()
}

func mainCleanup() {
	purgeClosedRooms()
	purgeOrphanedRows()
}

func purgeClosedRooms() {
	deleted, err := services.PurgeClosedRooms()
	if err != nil {
		logrus.WithError(err).Error("Failed to purge closed rooms")
		return
	}
	logrus.WithField("count", deleted).Info("Purged closed rooms")
}

func purgeOrphanedRows() {
	deleted, err := services.PurgeOrphanedRows()
	if err != nil {
		logrus.WithError(err).Error("Failed to purge orphaned membership/cart rows")
		return
	}
	logrus.WithField("count", deleted).Info("Purged orphaned membership/cart rows")
}
