package kafka

import (
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// CheckBrokers проверяет, что хотя бы один брокер принимает соединение.
func CheckBrokers(brokers []string, timeout time.Duration) error {
	if len(brokers) == 0 {
		return fmt.Errorf("kafka brokers are not configured")
	}

	config := sarama.NewConfig()
	config.Net.DialTimeout = timeout
	config.Net.ReadTimeout = timeout
	config.Net.WriteTimeout = timeout

	var errs []error
	for _, addr := range brokers {
		broker := sarama.NewBroker(addr)
		if err := broker.Open(config); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", addr, err))
			continue
		}
		connected, err := broker.Connected()
		_ = broker.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", addr, err))
			continue
		}
		if connected {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: not connected", addr))
	}
	return errors.Join(errs...)
}
