package app

import (
	"reflect"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	producer, err := initKafkaProducer(nil, logger)
	if err != nil {
		t.Errorf("expected no error for empty brokers, got %v", err)
	}
	if producer != nil {
		t.Error("expected nil producer for empty brokers")
	}
}

func TestInitKafkaProducer_UnreachableBroker(t *testing.T) {
	logger := log.WithField("test", "kafka")

	producer, err := initKafkaProducer([]string{"127.0.0.1:1"}, logger)
	if err == nil {
		t.Error("expected error for unreachable broker")
	}
	if producer != nil {
		t.Error("expected nil producer on error")
	}
}

func TestCloseKafka_NilProducer(_ *testing.T) {
	closeKafka(nil, log.WithField("test", "kafka"))
}

func TestParseBrokers(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{" , ", nil},
		{"kafka:9092", []string{"kafka:9092"}},
		{"broker1:9092, broker2:9092,,broker3:9092 ", []string{"broker1:9092", "broker2:9092", "broker3:9092"}},
	}
	for _, tt := range tests {
		if got := ParseBrokers(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseBrokers(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
