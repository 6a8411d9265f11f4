package cloudconnect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/restvc/config"
	"github.com/s0up4200/restvc/hypermedia"
	"github.com/s0up4200/restvc/task"
	"github.com/s0up4200/restvc/transport"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := New(server.URL+"/api/", transport.BasicCredential("admin", "secret"), zerolog.Nop(),
		WithTaskOptions(task.WithStep(time.Millisecond)))
	require.NoError(t, err)
	return svc, server
}

func TestGetTenantByName(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cloud/tenants":
			fmt.Fprint(w, `<EntityReferences>
				<Ref UID="1" Name="acme" Type="CloudTenantReference" Href="/api/cloud/tenants/1"/>
				<Ref UID="2" Name="globex" Type="CloudTenantReference" Href="/api/cloud/tenants/2"/>
			</EntityReferences>`)
		case "/api/cloud/tenants/1":
			fmt.Fprint(w, `<CloudTenant UID="1"><Name>acme</Name><Enabled>true</Enabled></CloudTenant>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	tenant, err := svc.GetTenantByName(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Name)
	assert.True(t, tenant.Enabled)

	_, err = svc.GetTenantByName(context.Background(), "initech")
	assert.True(t, hypermedia.IsNotFound(err))
}

func TestCreateTenant(t *testing.T) {
	var polls int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/cloud/tenants":
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
			assert.Contains(t, string(body), "<CreateCloudTenantSpec>")
			assert.Contains(t, string(body), "<Name>acme</Name>")
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprint(w, `<Task><TaskId>task-1</TaskId><State>Pending</State><Links><Link Rel="Delete" Href="/api/tasks/task-1"/></Links></Task>`)
		case r.URL.Path == "/api/tasks/task-1":
			if atomic.AddInt32(&polls, 1) < 2 {
				fmt.Fprint(w, `<Task><TaskId>task-1</TaskId><State>Running</State><Links><Link Rel="Delete" Href="/api/tasks/task-1"/></Links></Task>`)
				return
			}
			fmt.Fprint(w, `<Task><TaskId>task-1</TaskId><State>Finished</State><Result><Success>true</Success></Result><Links><Link Rel="Delete" Href="/api/tasks/task-1"/><Link Rel="Related" Href="/api/cloud/tenants/9"/></Links></Task>`)
		case r.URL.Path == "/api/cloud/tenants/9":
			fmt.Fprint(w, `<CloudTenant UID="9"><Name>acme</Name><Enabled>true</Enabled></CloudTenant>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	tenant, err := svc.CreateTenant(context.Background(), CreateTenantSpec{
		Name:     "acme",
		Password: "tenant-secret",
		Enabled:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "9", tenant.UID)
	assert.Equal(t, "acme", tenant.Name)
	assert.EqualValues(t, 2, atomic.LoadInt32(&polls))
}

func TestCreateTenantTaskFailure(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprint(w, `<Task><TaskId>task-1</TaskId><State>Pending</State><Links><Link Rel="Delete" Href="/api/tasks/task-1"/></Links></Task>`)
		default:
			fmt.Fprint(w, `<Task><TaskId>task-1</TaskId><State>Finished</State><Result><Success>false</Success><Message>tenant name taken</Message></Result><Links><Link Rel="Delete" Href="/api/tasks/task-1"/></Links></Task>`)
		}
	})

	_, err := svc.CreateTenant(context.Background(), CreateTenantSpec{Name: "acme"})
	var failedErr *task.FailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Equal(t, "tenant name taken", failedErr.Reason)
}

func TestDeleteTenantNoContent(t *testing.T) {
	var requests int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/cloud/tenants/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.DeleteTenant(context.Background(), "9"))
	// 204 resolves immediately, no task polling.
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))
}

func TestEnableTenant(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/cloud/tenants/9", r.URL.Path)
		require.Equal(t, "enable", r.URL.Query().Get("action"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.EnableTenant(context.Background(), "9"))
}

func TestListBackupResources(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cloud/tenants/9/resources", r.URL.Path)
		fmt.Fprint(w, `<CloudTenantResources>
			<CloudTenantResource><Id>r-1</Id><Name>cloud-repo-1</Name><QuotaMb>102400</QuotaMb></CloudTenantResource>
		</CloudTenantResources>`)
	})

	resources, err := svc.ListBackupResources(context.Background(), "9")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "cloud-repo-1", resources[0].Name)
	assert.EqualValues(t, 102400, resources[0].QuotaMB)
}

func TestGetRepositoryByNameAmbiguous(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<EntityReferences>
			<Ref Name="main" Type="RepositoryReference" Href="/api/repositories/1"/>
			<Ref Name="main" Type="RepositoryReference" Href="/api/repositories/2"/>
		</EntityReferences>`)
	})

	_, err := svc.GetRepositoryByName(context.Background(), "main")
	var amb *hypermedia.AmbiguousError
	require.ErrorAs(t, err, &amb)
}

func TestListVLANs(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cloud/vlans", r.URL.Path)
		fmt.Fprint(w, `<VlanConfigurations>
			<VlanConfiguration><Name>tenant-range</Name><FirstVlanId>100</FirstVlanId><LastVlanId>199</LastVlanId></VlanConfiguration>
		</VlanConfigurations>`)
	})

	vlans, err := svc.ListVLANs(context.Background())
	require.NoError(t, err)
	require.Len(t, vlans, 1)
	assert.Equal(t, 100, vlans[0].FirstVLAN)
	assert.Equal(t, 199, vlans[0].LastVLAN)
}

func TestSessionLifecycleFromConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/":
			fmt.Fprint(w, `<EnterpriseManager><Links><Link Rel="Create" Href="/api/sessionMngr/?v=latest"/></Links></EnterpriseManager>`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/sessionMngr/":
			assert.Equal(t, "Basic "+transport.BasicCredential("admin", "secret"), r.Header.Get("Authorization"))
			w.Header().Set("X-RestSvcSessionId", "TOKEN123")
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/api/logonSessions":
			assert.Equal(t, "TOKEN123", r.Header.Get("X-RestSvcSessionId"))
			fmt.Fprint(w, `<LogonSessionList>
				<LogonSession><SessionId>s-1</SessionId><UserName>admin</UserName><Links><Link Rel="Delete" Href="/api/logonSessions/s-1"/></Links></LogonSession>
			</LogonSessionList>`)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := &config.Config{
		Console: config.ConsoleConfig{
			Host:        strings.Split(u.Host, ":")[0],
			Port:        port,
			Username:    "admin",
			Password:    "secret",
			TokenHeader: "X-RestSvcSessionId",
		},
	}

	svc, err := NewFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Logon(ctx))

	sessions, err := svc.ListLogonSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "admin", sessions[0].UserName)

	require.NoError(t, svc.Close(ctx))
	assert.False(t, svc.Client().Session().Authenticated())
}
