package bootstrap

import (
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) commands.EventTopics {
			return commands.EventTopics{
				CalendarSync:  cfg.Kafka.CalendarSyncTopic,
				Notifications: cfg.Kafka.NotificationTopic,
			}
		},
	),
)
