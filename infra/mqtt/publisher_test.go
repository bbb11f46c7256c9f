package mqtt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solarsim/core/factory"
	coremetrics "github.com/kilianp07/solarsim/core/metrics"
)

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// mockClient implements pahoClient for tests
type mockClient struct {
	opts         *paho.ClientOptions
	published    []published
	publishErrs  []error
	disconnected bool
}

func (m *mockClient) IsConnected() bool { return !m.disconnected }
func (m *mockClient) Connect() paho.Token {
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) { m.disconnected = true }
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	var b []byte
	switch v := payload.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	}
	m.published = append(m.published, published{topic, qos, retained, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

func TestRecordSimulationPublishesJSON(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	p, err := NewEventPublisher(Config{Broker: "tcp://localhost:1883", QoS: 1})
	require.NoError(t, err)

	now := time.UnixMilli(1700000000000)
	require.NoError(t, p.RecordSimulation(coremetrics.SimulationEvent{
		Kind:      "network_output",
		Days:      2,
		Plants:    1,
		OutputKWh: decimal.RequireFromString("54.7487333459"),
		Duration:  2 * time.Millisecond,
		Time:      now,
	}))

	require.Len(t, mc.published, 1)
	msg := mc.published[0]
	assert.Equal(t, "solarsim/network/simulation/network_output", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.JSONEq(t, `{"kind":"network_output","days":2,"plants":1,"outputInKwh":54.7487333459,"durationMs":2,"timestamp":1700000000000}`, string(msg.payload))
}

func TestRecordRosterLoadPublishesJSON(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	p, err := NewEventPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "plant/a"})
	require.NoError(t, err)

	require.NoError(t, p.RecordRosterLoad(coremetrics.RosterLoadEvent{LoadID: "l1", Plants: 3, Time: time.UnixMilli(5)}))
	require.Len(t, mc.published, 1)
	assert.Equal(t, "plant/a/roster", mc.published[0].topic)
	var got map[string]any
	require.NoError(t, json.Unmarshal(mc.published[0].payload, &got))
	assert.Equal(t, "l1", got["loadId"])
	assert.EqualValues(t, 3, got["plants"])
}

func TestStatusWillConfigured(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	p, err := NewEventPublisher(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)

	assert.True(t, mc.opts.WillEnabled)
	assert.Equal(t, "solarsim/network/status", mc.opts.WillTopic)
	assert.Equal(t, "offline", string(mc.opts.WillPayload))
	assert.True(t, mc.opts.WillRetained)

	require.NoError(t, p.Close())
	require.Len(t, mc.published, 1)
	assert.Equal(t, "offline", string(mc.published[0].payload))
	assert.True(t, mc.disconnected)
}

func TestRetryLogic(t *testing.T) {
	mc := &mockClient{publishErrs: []error{errors.New("net fail"), nil}}
	withMockClient(t, mc)
	p, err := NewEventPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)

	require.NoError(t, p.RecordRosterLoad(coremetrics.RosterLoadEvent{}))
	assert.Len(t, mc.published, 2)
}

func TestRetryExhausted(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail, fail}}
	withMockClient(t, mc)
	p, err := NewEventPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 2, BackoffMS: 1})
	require.NoError(t, err)

	err = p.RecordRosterLoad(coremetrics.RosterLoadEvent{})
	assert.ErrorIs(t, err, fail)
	assert.Len(t, mc.published, 3)
}

func TestConfigValidation(t *testing.T) {
	_, err := NewEventPublisher(Config{})
	assert.ErrorContains(t, err, "broker is required")
	_, err = NewEventPublisher(Config{Broker: "tcp://x:1883", QoS: 3})
	assert.ErrorContains(t, err, "qos")
}

func TestFactoryRegistersMQTTSink(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	s, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "mqtt",
		Conf: map[string]any{"broker": "tcp://localhost:1883", "qos": 1, "client_id": "sim"},
	}})
	require.NoError(t, err)
	p, ok := s.(*EventPublisher)
	require.True(t, ok, "got %T", s)
	assert.Equal(t, byte(1), p.cfg.QoS)
	assert.Equal(t, "sim", mc.opts.ClientID)
}

func TestNewClientOptionsAuth(t *testing.T) {
	opts, err := NewClientOptions(Config{Broker: "tcp://localhost:1883", ClientID: "id", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "u", opts.Username)
	assert.Equal(t, "p", opts.Password)
}

// generateCert writes a self-signed certificate usable as client and CA.
func generateCert(t *testing.T) (certFile, keyFile, caFile string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tmpl := x509.Certificate{SerialNumber: big.NewInt(1), Subject: pkix.Name{CommonName: "test"}, NotBefore: time.Now(), NotAfter: time.Now().Add(time.Hour)}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	certPEM := pemBlock("CERTIFICATE", der)
	keyPEM := pemBlock("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(priv))

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	caFile = filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(certFile, certPEM, 0o644))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0o600))
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o644))
	return
}

func pemBlock(typ string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der})
}

func TestLoadTLSConfig(t *testing.T) {
	cert, key, ca := generateCert(t)
	cfg := Config{UseTLS: true, ClientCert: cert, ClientKey: key, CABundle: ca}
	tlsCfg, err := cfg.LoadTLSConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, tlsCfg.Certificates)
	assert.NotNil(t, tlsCfg.RootCAs)

	_, err = Config{UseTLS: true}.LoadTLSConfig()
	assert.Error(t, err)
}
