package resource

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTTOptions configures the mqtt downloader. The zero value connects
// anonymously without TLS and waits five seconds for a message.
type MQTTOptions struct {
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	QoS        byte        `json:"qos"`
	TimeoutMS  int         `json:"timeout_ms"`
	TLSConfig  *tls.Config `json:"-"`
}

func (o MQTTOptions) timeout() time.Duration {
	if o.TimeoutMS > 0 {
		return time.Duration(o.TimeoutMS) * time.Millisecond
	}
	return 5 * time.Second
}

// loadTLSConfig loads the TLS configuration from the file paths in the
// options.
func (o MQTTOptions) loadTLSConfig() (*tls.Config, error) {
	if o.TLSConfig != nil {
		return o.TLSConfig, nil
	}
	if o.ClientCert == "" || o.ClientKey == "" || o.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(o.ClientCert, o.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(o.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// MQTTDownloader treats mqtt://host:port/topic/path as a resource address:
// it connects, subscribes to the topic and returns the first message payload,
// typically the broker's retained copy.
func MQTTDownloader(opts MQTTOptions) Downloader {
	return func(ctx context.Context, u *URL) (io.ReadCloser, error) {
		topic := strings.TrimPrefix(u.Path, "/")
		if topic == "" {
			return nil, fmt.Errorf("mqtt url %q has no topic", u.String())
		}
		clientID := opts.ClientID
		if clientID == "" {
			clientID = "confect-" + uuid.NewString()
		}

		broker := "tcp://" + u.Host
		if opts.UseTLS {
			broker = "ssl://" + u.Host
		}
		co := paho.NewClientOptions().AddBroker(broker).SetClientID(clientID)
		if opts.Username != "" {
			co.SetUsername(opts.Username)
		}
		if opts.Password != "" {
			co.SetPassword(opts.Password)
		}
		if opts.UseTLS {
			tlsCfg, err := opts.loadTLSConfig()
			if err != nil {
				return nil, err
			}
			co.SetTLSConfig(tlsCfg)
		}

		cli := paho.NewClient(co)
		if token := cli.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connect %s: %w", broker, token.Error())
		}
		defer cli.Disconnect(250)

		msgs := make(chan []byte, 1)
		if token := cli.Subscribe(topic, opts.QoS, func(_ paho.Client, m paho.Message) {
			select {
			case msgs <- m.Payload():
			default:
			}
		}); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("subscribe %s: %w", topic, token.Error())
		}

		timer := time.NewTimer(opts.timeout())
		defer timer.Stop()
		select {
		case payload := <-msgs:
			return io.NopCloser(bytes.NewReader(payload)), nil
		case <-timer.C:
			return nil, fmt.Errorf("mqtt topic %s: %w", topic, ErrNoMessage)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
