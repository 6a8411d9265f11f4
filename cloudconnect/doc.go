// Package cloudconnect provides a typed client for the cloud tenant and
// resource provisioning surface of the backup platform's management API.
//
// # Architecture
//
// The package is a thin facade: every operation maps a path template
// onto the transport client, navigates hypermedia links where the API
// requires it, and resolves asynchronous mutations through the task
// poller.
//
//   - Service: the operation surface (tenants, backup and replica
//     resources, hardware plans, repositories, VLANs, backup servers,
//     logon sessions)
//   - Types: XML entity models carrying hypermedia link collections
//
// # Usage
//
// Open a session explicitly and close it on every exit path:
//
//	logger := zerolog.New(os.Stderr)
//	svc, err := cloudconnect.New(
//		"https://em.example.com:9398/api/",
//		transport.BasicCredential("admin", "secret"),
//		logger,
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := svc.Logon(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close(ctx)
//
//	tenant, err := svc.CreateTenant(ctx, cloudconnect.CreateTenantSpec{
//		Name:     "acme",
//		Password: "tenant-secret",
//		Enabled:  true,
//	})
//
// # Error Handling
//
// Operations return the transport, hypermedia, and task error types
// unmodified; nothing is translated on the way up. Expired session
// tokens are renewed transparently by the transport layer.
package cloudconnect
