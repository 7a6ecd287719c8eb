package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const LoanEventsTopic = "loan-events"

type Config struct {
	Addrs         []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	ConsumerGroup string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"libsys-audit"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumerGroup(cfg Config) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, cfg.ConsumerGroup, defaultCfg)
}

// Consume blocks, rejoining the group after every rebalance until ctx is done.
func Consume(ctx context.Context, group sarama.ConsumerGroup, h sarama.ConsumerGroupHandler, topics ...string) error {
	for {
		if err := group.Consume(ctx, topics, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return errors.Wrap(err, "group consume")
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
