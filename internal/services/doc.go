// Package services implements the Spotify Web API calls consumed by the discovery and genre pipelines.
//
// # Catalog Interface
//
// [Catalog] names the four raw operations the pipelines depend on. [SpotifyService] implements it over
// [resty.Client], pacing requests with a [rate.Limiter].
//
// # Authentication
//
// [ClientCredentials] performs the OAuth2 client-credentials exchange against the Spotify token endpoint.
// Its [http.Client] attaches and refreshes the bearer token, so token failures surface from the first request.
//
// # Error Handling
//
// Non-2xx responses are returned as [*APIError], which unwraps to a sentinel from the shared package:
//   - [shared.ErrRateLimited] : HTTP 429, with the Retry-After header parsed into [APIError.RetryAfter]
//   - [shared.ErrAuthFailed] : HTTP 401
//   - [shared.ErrAPIRequest] : any other status
//
// # Response Shapes
//
// Response types mirror the API exactly. Nullable entries (search items, playlist tracks, bulk artists)
// decode to nil pointers so callers can tell "null" from "empty". Search items keep their raw payload.
package services
