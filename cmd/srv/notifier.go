package main

import (
	"github.com/inkwell-gg/backend/internal/domain/notification"
	"github.com/inkwell-gg/backend/pkg/kafka"
	"github.com/urfave/cli/v2"
)

func (s *srv) startNotifier(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadContext()
	s.loadEndpoint()

	deliverer := notification.NewDeliverer(s.discordEndpoint)
	subscriber := kafka.NewSubscriber(
		"notifier",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Kafka.OutgoingTopic},
		deliverer.Handle,
	)

	subscriber.Subscribe(s.ctx)
	<-s.ctx.Done()
	return subscriber.Stop(s.ctx)
}
