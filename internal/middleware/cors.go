package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	TriviaMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
	CoffeeMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
)

// CORS allows every origin and the given methods. The frontends read the
// allow headers on plain responses too, so they are written on every request.
func CORS(methods []string) gin.HandlerFunc {
	allowAll := cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    methods,
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	})
	allowMethods := strings.Join(methods, ",")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", allowMethods)
		allowAll(c)
	}
}
