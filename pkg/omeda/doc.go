// Package omeda is a client for the Omeda REST API.
//
// # Requests
//
// Every call goes through [Client.Request], which builds a brand-scoped
// (https://ows.omeda.com/webservices/rest/brand/{brand}/{endpoint}) or
// client-scoped URL, sends the App ID and User-Agent headers, and
// classifies the response by its Content-Type header:
//
//   - application/json: parsed, returned as *JSONResponse
//   - text/*: returned as *TextResponse
//   - anything else: an UNSUPPORTED_CONTENT_TYPE error
//
// Non-2xx responses fail with a *ResponseError. A 404 is special:
//
//  1. if the API says the resource is "valid but not active", the error is
//     returned no matter what the caller asked for
//  2. otherwise, if ErrorOnNotFound is false, an empty successful response
//     is returned ({} or "")
//  3. otherwise the error is returned
//
// Nothing is retried.
//
// # Caching
//
// [Client.Get] consults Config.Cache when one is set. A hit is returned
// with FromCache() == true and no network call. A miss performs the
// request and stores the body once. Concurrent misses on the same key are
// not collapsed; each one reaches the API.
//
// # Usage
//
//	client, err := omeda.New(omeda.Config{
//	    AppID: os.Getenv("OMEDA_APP_ID"),
//	    Brand: "ACME",
//	    Cache: cache.NewMemory(),
//	})
//	if err != nil {
//	    return err
//	}
//	demographics, err := client.Brand().Demographics(ctx)
package omeda
