package middleware

import "strings"

var entityRoutes = map[string]string{
	"users":  "user",
	"orders": "order",
	"offers": "offer",
}

// EntityFromRoute returns the entity served by an echo route template such
// as "/orders/:id", or "" for routes outside the entity API.
func EntityFromRoute(route string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
	return entityRoutes[segment]
}
