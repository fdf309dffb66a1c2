package rabbitmq

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"
)

// Publisher defines the interface for publishing messages to RabbitMQ.
type Publisher interface {
	Publish(exchange string, body []byte) error
}

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// session is one connection and its channel. closed fires when either goes away.
type session struct {
	conn    io.Closer
	channel amqpChannel
	closed  <-chan *amqp.Error
}

func (s *session) lost() (*amqp.Error, bool) {
	select {
	case err, ok := <-s.closed:
		if !ok {
			return nil, true
		}
		return err, true
	default:
		return nil, false
	}
}

func (s *session) close() {
	s.channel.Close()
	s.conn.Close()
}

type dialFunc func(url string) (*session, error)

// AMQPPublisher redials on the next Publish after the broker drops the connection.
type AMQPPublisher struct {
	url      string
	dial     dialFunc
	mu       sync.Mutex
	sess     *session
	declared map[string]bool
}

// NewAMQPPublisher creates a new AMQPPublisher and connects to RabbitMQ.
func NewAMQPPublisher(amqpURL string) (*AMQPPublisher, error) {
	return newAMQPPublisher(amqpURL, dialAMQP)
}

func newAMQPPublisher(amqpURL string, dial dialFunc) (*AMQPPublisher, error) {
	sess, err := dial(amqpURL)
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{url: amqpURL, dial: dial, sess: sess, declared: make(map[string]bool)}, nil
}

func dialAMQP(url string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	closed := make(chan *amqp.Error, 1)
	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chanClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case err := <-connClosed:
			closed <- err
		case err := <-chanClosed:
			closed <- err
		}
		close(closed)
	}()

	return &session{conn: conn, channel: ch, closed: closed}, nil
}

// ensureSession must be called with mu held.
func (p *AMQPPublisher) ensureSession() error {
	if p.sess != nil {
		cause, lost := p.sess.lost()
		if !lost {
			return nil
		}
		slog.Warn("amqp connection lost, redialing", "error", cause)
		p.sess.close()
		p.sess = nil
	}

	sess, err := p.dial(p.url)
	if err != nil {
		return err
	}
	p.sess = sess
	p.declared = make(map[string]bool)
	return nil
}

// Publish publishes a persistent JSON message to the given fanout exchange.
func (p *AMQPPublisher) Publish(exchange string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureSession(); err != nil {
		return err
	}

	if !p.declared[exchange] {
		err := p.sess.channel.ExchangeDeclare(
			exchange,
			"fanout",
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
		p.declared[exchange] = true
	}

	return p.sess.channel.Publish(
		exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Close closes the RabbitMQ connection and channel.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess != nil {
		p.sess.close()
		p.sess = nil
	}
}
