package rabbitmq

import (
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  []string
	published [][]byte
	closed    bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.declared = append(c.declared, name)
	return nil
}

func (c *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.published = append(c.published, msg.Body)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeBroker struct {
	dials    int
	fail     bool
	channels []*fakeChannel
	drops    []chan *amqp.Error
}

func (b *fakeBroker) dial(url string) (*session, error) {
	b.dials++
	if b.fail {
		return nil, errors.New("connection refused")
	}
	ch := &fakeChannel{}
	drop := make(chan *amqp.Error, 1)
	b.channels = append(b.channels, ch)
	b.drops = append(b.drops, drop)
	return &session{conn: &fakeConn{}, channel: ch, closed: drop}, nil
}

func TestAMQPPublisher_Publish_DeclaresOnce(t *testing.T) {
	// Setup
	broker := &fakeBroker{}
	pub, err := newAMQPPublisher("amqp://test", broker.dial)
	require.NoError(t, err)

	// Act
	require.NoError(t, pub.Publish("attendance", []byte("a")))
	require.NoError(t, pub.Publish("attendance", []byte("b")))

	// Assert
	assert.Equal(t, 1, broker.dials)
	assert.Equal(t, []string{"attendance"}, broker.channels[0].declared)
	assert.Len(t, broker.channels[0].published, 2)
}

func TestAMQPPublisher_Publish_RedialsAfterConnectionLoss(t *testing.T) {
	// Setup
	broker := &fakeBroker{}
	pub, err := newAMQPPublisher("amqp://test", broker.dial)
	require.NoError(t, err)
	require.NoError(t, pub.Publish("attendance", []byte("a")))

	// Act
	broker.drops[0] <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"}
	err = pub.Publish("attendance", []byte("b"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, broker.dials)
	assert.True(t, broker.channels[0].closed)
	assert.Equal(t, []string{"attendance"}, broker.channels[1].declared)
	assert.Equal(t, [][]byte{[]byte("b")}, broker.channels[1].published)
}

func TestAMQPPublisher_Publish_RedialFailureIsRetried(t *testing.T) {
	// Setup
	broker := &fakeBroker{}
	pub, err := newAMQPPublisher("amqp://test", broker.dial)
	require.NoError(t, err)
	close(broker.drops[0])
	broker.fail = true

	// Act
	firstErr := pub.Publish("attendance", []byte("a"))
	broker.fail = false
	secondErr := pub.Publish("attendance", []byte("b"))

	// Assert
	assert.Error(t, firstErr)
	assert.NoError(t, secondErr)
	assert.Equal(t, 3, broker.dials)
}

func TestNewAMQPPublisher_DialError(t *testing.T) {
	broker := &fakeBroker{fail: true}

	_, err := newAMQPPublisher("amqp://test", broker.dial)

	assert.Error(t, err)
}
