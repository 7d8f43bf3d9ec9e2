//go:build !swag

package swaggerkit

// docReader serves a skeleton until docs are generated with the swag tag
var docReader = func() string {
	return `{"swagger":"2.0","info":{"title":"Observa Floresta API","version":"0.1.0"},"paths":{}}`
}
