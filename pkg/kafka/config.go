package kafka

// Config holds Kafka connection configuration.
type Config struct {
	Brokers []string
}
