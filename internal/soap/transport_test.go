package soap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-netsuite/internal/auth"
)

var testNamespaces = map[string]string{
	CorePrefix:     "urn:core_2019_2.platform.webservices.netsuite.com",
	MessagesPrefix: "urn:messages_2019_2.platform.webservices.netsuite.com",
}

func TestNewTransport(t *testing.T) {
	t.Run("trims trailing slash", func(t *testing.T) {
		tr, err := NewTransport("https://123.suitetalk.api.netsuite.com/services/", nil, testNamespaces, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://123.suitetalk.api.netsuite.com/services", tr.Endpoint.String())
		assert.NotNil(t, tr.HTTPClient)
	})

	t.Run("rejects relative endpoint", func(t *testing.T) {
		_, err := NewTransport("/services", nil, testNamespaces, nil)
		require.Error(t, err)
	})
}

func TestTransport_Do(t *testing.T) {
	t.Run("sends envelope with passport", func(t *testing.T) {
		var body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "get", r.Header.Get("SOAPAction"))
			assert.Equal(t, "text/xml; charset=utf-8", r.Header.Get("Content-Type"))

			data, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			body = string(data)

			_, err = w.Write([]byte(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><getResponse/></soapenv:Body></soapenv:Envelope>`))
			assert.NoError(t, err)
		}))
		t.Cleanup(server.Close)

		creds := &auth.Credentials{
			Account: "123", ConsumerKey: "ck", ConsumerSecret: "cs",
			TokenKey: "tk", TokenSecret: "ts",
		}
		tr, err := NewTransport(server.URL, creds, testNamespaces, nil)
		require.NoError(t, err)

		baseRef := New(QName(MessagesPrefix, "baseRef"))
		baseRef.CreateAttr("internalId", "42")
		resp, err := tr.Do(context.Background(), &Request{
			Action: "get",
			Body:   New(QName(MessagesPrefix, "get"), baseRef),
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		assert.True(t, strings.HasPrefix(body, "<?xml"))
		assert.Contains(t, body, `xmlns:platformCore="urn:core_2019_2.platform.webservices.netsuite.com"`)
		assert.Contains(t, body, `<platformMsgs:tokenPassport>`)
		assert.Contains(t, body, `<platformCore:account>123</platformCore:account>`)
		assert.Contains(t, body, `<platformCore:signature algorithm="HMAC-SHA256">`)
		assert.Contains(t, body, `<platformMsgs:baseRef internalId="42"></platformMsgs:baseRef>`)
	})

	t.Run("omits passport without credentials", func(t *testing.T) {
		var body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			body = string(data)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		tr, err := NewTransport(server.URL, nil, testNamespaces, nil)
		require.NoError(t, err)

		_, err = tr.Do(context.Background(), &Request{Action: "getAll", Body: New("platformMsgs:getAll")})
		require.NoError(t, err)
		assert.NotContains(t, body, "tokenPassport")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		tr, err := NewTransport("https://example.com", nil, testNamespaces, nil)
		require.NoError(t, err)

		_, err = tr.Do(context.Background(), &Request{Action: "get"})
		require.Error(t, err)
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("body", func(t *testing.T) {
		env, err := ParseEnvelope([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Header><platformMsgs:documentInfo xmlns:platformMsgs="urn:messages"/></soapenv:Header>
  <soapenv:Body>
    <deleteResponse xmlns="urn:messages">
      <writeResponse>
        <platformCore:status isSuccess="true" xmlns:platformCore="urn:core"/>
      </writeResponse>
    </deleteResponse>
  </soapenv:Body>
</soapenv:Envelope>`))
		require.NoError(t, err)
		require.Nil(t, env.Fault)
		require.NotNil(t, env.Body)

		assert.Equal(t, "deleteResponse", env.Body.Tag)
		status := Child(Child(env.Body, "writeResponse"), "status")
		require.NotNil(t, status)
		v, ok := Attr(status, "isSuccess")
		assert.True(t, ok)
		assert.Equal(t, "true", v)
		assert.Equal(t, "urn:core", status.NamespaceURI())
		require.NotNil(t, env.Header)
	})

	t.Run("fault", func(t *testing.T) {
		env, err := ParseEnvelope([]byte(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>soapenv:Server.userException</faultcode>
      <faultstring>Invalid login attempt.</faultstring>
      <detail>
        <platformFaults:invalidCredentialsFault xmlns:platformFaults="urn:faults">
          <platformFaults:code>INVALID_LOGIN_ATTEMPT</platformFaults:code>
          <platformFaults:message>Invalid login attempt.</platformFaults:message>
        </platformFaults:invalidCredentialsFault>
      </detail>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`))
		require.NoError(t, err)
		require.NotNil(t, env.Fault)

		assert.Equal(t, "soapenv:Server.userException", env.Fault.Code)
		assert.Equal(t, "Invalid login attempt.", env.Fault.Message)
		assert.Equal(t, "INVALID_LOGIN_ATTEMPT", env.Fault.DetailCode)
		assert.Equal(t, "soap fault INVALID_LOGIN_ATTEMPT: Invalid login attempt.", env.Fault.Error())
	})

	t.Run("not an envelope", func(t *testing.T) {
		_, err := ParseEnvelope([]byte(`<html><body>maintenance</body></html>`))
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseEnvelope([]byte(`<soapenv:Envelope`))
		require.Error(t, err)
	})
}
