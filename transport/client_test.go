package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(baseURL, BasicCredential("admin", "secret"), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{
			name:    "valid base URL",
			baseURL: "http://em.example.com:9399/api/",
			wantErr: false,
		},
		{
			name:    "missing base URL",
			baseURL: "",
			wantErr: true,
		},
		{
			name:    "relative base URL",
			baseURL: "/api/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, "cred", zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestDoReturnsBodyUnmodified(t *testing.T) {
	const payload = `<CloudTenant><Name>acme</Name></CloudTenant>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cloud/tenants/1", r.URL.Path)
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/")
	resp, err := client.Do(context.Background(), http.MethodGet, "cloud/tenants/1", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, payload, string(resp.Body))
}

func TestDoStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "bad request", status: 400},
		{name: "not found", status: 404},
		{name: "server error", status: 500},
		{name: "redirect is not success", status: 304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL+"/api/")
			_, err := client.Do(context.Background(), http.MethodGet, "cloud/tenants", nil)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, server.URL+"/api/cloud/tenants", statusErr.URI)
		})
	}
}

func TestResolveURI(t *testing.T) {
	client := newTestClient(t, "http://em.example.com:9399/api/")

	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{
			name: "empty resolves to the API root",
			uri:  "",
			want: "http://em.example.com:9399/api/",
		},
		{
			name: "relative path resolves under the base",
			uri:  "cloud/tenants",
			want: "http://em.example.com:9399/api/cloud/tenants",
		},
		{
			name: "host-absolute path is kept",
			uri:  "/api/sessionMngr/?v=latest",
			want: "http://em.example.com:9399/api/sessionMngr/?v=latest",
		},
		{
			name: "absolute URI under the base is normalized",
			uri:  "http://em.example.com:9399/api/cloud/tenants/1",
			want: "http://em.example.com:9399/api/cloud/tenants/1",
		},
		{
			name:    "absolute URI on a foreign host is refused",
			uri:     "http://evil.example.com/api/cloud/tenants",
			wantErr: true,
		},
		{
			name:    "scheme change is a foreign URI",
			uri:     "https://em.example.com:9399/api/cloud/tenants",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.resolveURI(tt.uri)
			if tt.wantErr {
				var protoErr *ProtocolError
				require.ErrorAs(t, err, &protoErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenericGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<LogonSessionList><LogonSession><SessionId>s-1</SessionId><UserName>admin</UserName></LogonSession></LogonSessionList>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/")
	list, err := Get[LogonSessionList](context.Background(), client, "logonSessions")
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, "s-1", list.Sessions[0].SessionID)
	assert.Equal(t, "admin", list.Sessions[0].UserName)
}

func TestJSONCodec(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"message":"hello"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/", WithCodec(JSONCodec{}))
	resp, err := client.Do(context.Background(), http.MethodGet, "status", nil)
	require.NoError(t, err)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "hello", body.Message)
}
