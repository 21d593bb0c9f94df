// Package client provides the HTTP transport for the identity service.
//
// The client wraps net/http with a fixed base URL, JSON encoding, structured
// error decoding and a set of process-wide default headers. The authorization
// header is one of those defaults: once armed via SetAuthHeader, every
// outgoing request carries the session credential, mirroring how a browser
// client configures its request library once after login.
//
// # Basic Usage
//
//	import "github.com/dollro/authclient/core/client"
//
//	api, err := client.New(client.Config{
//		BaseURL: "https://api.example.com/api",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := api.Login(ctx, map[string]string{
//		"username": "alice",
//		"password": "secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	api.SetAuthHeader(token.Key)
//	profile, err := api.User(ctx)
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError with the HTTP status and any
// structured messages the service supplied (detail, non-field errors,
// per-field validation messages in body order):
//
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// credential is no longer valid
//	}
//
// Network-level failures are wrapped in ErrRequestFailed and never carry an
// APIError.
//
// # Downloads
//
// DownloadFile streams an authenticated binary response, deriving the local
// filename from the Content-Disposition header:
//
//	file, err := api.DownloadFile(ctx, "/reports/latest/", "report.pdf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	path, err := file.Save(os.TempDir())
package client
