/*
Package spa serves a single-page application next to its API.

Requests under the assets prefix are served from the distribution directory.
Paths under the API prefix that no API route handled get a JSON 404.  Every
other path is a client route: the application shell (index.html) is returned
so the browser-side Dispatcher can render it.  The shell is sent with 200 when
the route table matches the path and 404 when it does not, so crawlers and
monitoring see the same not found result the client renders.
*/
package spa
