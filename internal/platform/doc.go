// Package platform provides the real capability implementations the bridge
// dispatcher is wired with: the system clipboard, a URL-scheme launcher and
// the user agent string. Each type satisfies the matching interface in
// internal/bridge.
//
// ReadImage loads an image file for addCardWithImage. Files are sniffed by
// content rather than extension and handed over base64-encoded, which is
// the form the browser host sends.
package platform
